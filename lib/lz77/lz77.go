// Copyright 2024 The Microcodec Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// ----------------

// Package lz77 implements a greedy back-reference matcher: decisions,
// literals, and (distance, length) pairs packed into a single bit-stream
// behind a self-describing header.
package lz77

import (
	"errors"
	"math/bits"

	"github.com/embedded-codecs/microcodec/lib/bitstream"
	"github.com/embedded-codecs/microcodec/lib/ucode"
)

// EndToken terminates an incremental decode.
const EndToken uint32 = 0xFFFFFFFF

var (
	// ErrCorruptHeader is returned for an internally inconsistent header.
	ErrCorruptHeader = errors.New("lz77: corrupt header")
	// ErrCapacityExceeded is returned when a decode exceeds destCapacity or
	// the cyclic buffer is too small for the declared distance.
	ErrCapacityExceeded = errors.New("lz77: output exceeds destination capacity")
)

const (
	byteLengthChunk, byteLengthDelta     = 6, 0
	bitsPerSymChunk, bitsPerSymDelta     = 3, 0
	bitsPerTokenChunk, bitsPerTokenDelta = 5, 0
	minLengthChunk, minLengthDelta       = 2, 0
	maxTokenChunk, maxTokenDelta         = 25, -10
	maxDistChunk, maxDistDelta           = 14, -7
)

func bitLen32(v uint32) uint8 {
	if v == 0 {
		return 1
	}
	return uint8(bits.Len32(v))
}

// Encode runs the greedy matcher over data and packs the result into a
// fresh bit-stream.
func Encode(data []byte, cfg Config) (*bitstream.BitStream, error) {
	s := bitstream.New()
	if err := ucode.WriteLomont1(s, uint32(len(data)), byteLengthChunk, byteLengthDelta); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return s, nil
	}

	r := Match(data, cfg)

	var actualMinLength uint32 = 0xFFFFFFFF
	var actualMaxDistance uint32
	for _, l := range r.Lengths {
		if l < actualMinLength {
			actualMinLength = l
		}
	}
	if actualMinLength == 0xFFFFFFFF {
		actualMinLength = cfg.MinimumLength
	}
	for _, d := range r.Distances {
		if d > actualMaxDistance {
			actualMaxDistance = d
		}
	}

	tokens := make([]uint32, len(r.Distances))
	var actualMaxToken uint32
	for i := range r.Distances {
		tok := (r.Lengths[i]-actualMinLength)*(actualMaxDistance+1) + r.Distances[i]
		tokens[i] = tok
		if tok > actualMaxToken {
			actualMaxToken = tok
		}
	}

	var maxLiteral uint32
	for _, lit := range r.Literals {
		if lit > maxLiteral {
			maxLiteral = lit
		}
	}
	bitsPerSymbol := bitLen32(maxLiteral)
	bitsPerToken := bitLen32(actualMaxToken)

	if err := ucode.WriteLomont1(s, uint32(bitsPerSymbol)-1, bitsPerSymChunk, bitsPerSymDelta); err != nil {
		return nil, err
	}
	if err := ucode.WriteLomont1(s, uint32(bitsPerToken)-1, bitsPerTokenChunk, bitsPerTokenDelta); err != nil {
		return nil, err
	}
	if err := ucode.WriteLomont1(s, actualMinLength, minLengthChunk, minLengthDelta); err != nil {
		return nil, err
	}
	if err := ucode.WriteLomont1(s, actualMaxToken, maxTokenChunk, maxTokenDelta); err != nil {
		return nil, err
	}
	if err := ucode.WriteLomont1(s, actualMaxDistance, maxDistChunk, maxDistDelta); err != nil {
		return nil, err
	}

	litIdx, tokIdx := 0, 0
	for _, dec := range r.Decisions {
		s.Write(uint32(dec), 1)
		if dec == 0 {
			s.Write(r.Literals[litIdx], bitsPerSymbol)
			litIdx++
		} else {
			s.Write(tokens[tokIdx], bitsPerToken)
			tokIdx++
		}
	}
	return s, nil
}

// Compress LZ77-encodes input using DefaultConfig.
func Compress(input []byte) ([]byte, error) {
	s, err := Encode(input, DefaultConfig)
	if err != nil {
		return nil, err
	}
	return s.ToBytes(), nil
}

// Decompress reverses Compress, allocating its own cyclic matching buffer
// from the header's declared distance/length bounds rather than requiring
// the caller to pre-size one (see NewDecoder for the incremental API, which
// does require a caller-supplied buffer).
func Decompress(input []byte, destCapacity uint32) ([]byte, error) {
	s := bitstream.FromBytes(input)

	// Peek byteLength on a scratch cursor so a declared-empty stream can
	// short-circuit before any header field requiring a non-empty body is
	// parsed.
	peek := bitstream.FromBytes(input)
	byteLength, err := ucode.ReadLomont1(peek, byteLengthChunk, byteLengthDelta)
	if err != nil {
		return nil, err
	}
	if byteLength > destCapacity {
		return nil, ErrCapacityExceeded
	}
	if byteLength == 0 {
		return []byte{}, nil
	}

	actualMaxDistance, actualMaxLength, err := peekBounds(input)
	if err != nil {
		return nil, err
	}
	bufLen := actualMaxDistance + 1
	if actualMaxLength+1 > bufLen {
		bufLen = actualMaxLength + 1
	}
	buf := make([]byte, bufLen)

	d, count, err := NewDecoder(s, buf)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, count)
	tmpLen := actualMaxLength
	if tmpLen < 1 {
		tmpLen = 1
	}
	tmp := make([]byte, tmpLen)
	for {
		n, ok := d.Block(tmp)
		if !ok {
			break
		}
		out = append(out, tmp[:n]...)
	}
	if uint32(len(out)) != count {
		return nil, errors.New("lz77: short decode")
	}
	return out, nil
}

// peekBounds reads just enough of the header on a scratch cursor to size the
// cyclic buffer before handing the real cursor to NewDecoder.
func peekBounds(input []byte) (actualMaxDistance, actualMaxLength uint32, err error) {
	s := bitstream.FromBytes(input)
	if _, err = ucode.ReadLomont1(s, byteLengthChunk, byteLengthDelta); err != nil {
		return 0, 0, err
	}
	if _, err = ucode.ReadLomont1(s, bitsPerSymChunk, bitsPerSymDelta); err != nil {
		return 0, 0, err
	}
	if _, err = ucode.ReadLomont1(s, bitsPerTokenChunk, bitsPerTokenDelta); err != nil {
		return 0, 0, err
	}
	actualMinLength, err := ucode.ReadLomont1(s, minLengthChunk, minLengthDelta)
	if err != nil {
		return 0, 0, err
	}
	actualMaxToken, err := ucode.ReadLomont1(s, maxTokenChunk, maxTokenDelta)
	if err != nil {
		return 0, 0, err
	}
	actualMaxDistance, err = ucode.ReadLomont1(s, maxDistChunk, maxDistDelta)
	if err != nil {
		return 0, 0, err
	}
	actualMaxLength = actualMaxToken/(actualMaxDistance+1) + actualMinLength
	return actualMaxDistance, actualMaxLength, nil
}
