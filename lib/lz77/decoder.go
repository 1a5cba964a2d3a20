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

package lz77

import (
	"github.com/embedded-codecs/microcodec/lib/bitstream"
	"github.com/embedded-codecs/microcodec/lib/ucode"
)

// Decoder drives an incremental, constant-memory LZ77 decode, writing
// output through a caller-supplied cyclic buffer so that self-overlapping
// runs (distance < length) are supported without materializing the whole
// output.
type Decoder struct {
	s                 *bitstream.BitStream
	bitsPerSymbol     uint8
	bitsPerToken      uint8
	actualMinLength   uint32
	actualMaxDistance uint32
	byteLength        uint32

	buf        []byte
	writeIndex uint32
	produced   uint32
}

// NewDecoder parses the header at s's current read cursor. buf is the
// caller-owned cyclic matching buffer; its length must be at least
// max(actualMaxDistance, actualMaxLength) + 1, which the caller can learn in
// advance via a header peek, or simply by over-allocating.
func NewDecoder(s *bitstream.BitStream, buf []byte) (*Decoder, uint32, error) {
	byteLength, err := ucode.ReadLomont1(s, byteLengthChunk, byteLengthDelta)
	if err != nil {
		return nil, 0, err
	}
	d := &Decoder{s: s, byteLength: byteLength, buf: buf}
	if byteLength == 0 {
		return d, 0, nil
	}

	bitsPerSymbolM1, err := ucode.ReadLomont1(s, bitsPerSymChunk, bitsPerSymDelta)
	if err != nil {
		return nil, 0, err
	}
	bitsPerTokenM1, err := ucode.ReadLomont1(s, bitsPerTokenChunk, bitsPerTokenDelta)
	if err != nil {
		return nil, 0, err
	}
	actualMinLength, err := ucode.ReadLomont1(s, minLengthChunk, minLengthDelta)
	if err != nil {
		return nil, 0, err
	}
	actualMaxToken, err := ucode.ReadLomont1(s, maxTokenChunk, maxTokenDelta)
	if err != nil {
		return nil, 0, err
	}
	actualMaxDistance, err := ucode.ReadLomont1(s, maxDistChunk, maxDistDelta)
	if err != nil {
		return nil, 0, err
	}

	actualMaxLength := actualMaxToken/(actualMaxDistance+1) + actualMinLength
	need := actualMaxDistance + 1
	if actualMaxLength+1 > need {
		need = actualMaxLength + 1
	}
	if uint32(len(buf)) < need {
		return nil, 0, ErrCapacityExceeded
	}

	d.bitsPerSymbol = uint8(bitsPerSymbolM1) + 1
	d.bitsPerToken = uint8(bitsPerTokenM1) + 1
	d.actualMinLength = actualMinLength
	d.actualMaxDistance = actualMaxDistance
	return d, byteLength, nil
}

// Block decodes one decision: either a single literal or a back-reference
// run, writing the produced bytes to dest (which must be at least
// actualMaxLength long) and returning how many bytes were written. ok is
// false once byteLength bytes have been produced.
func (d *Decoder) Block(dest []byte) (int, bool) {
	if d.produced >= d.byteLength {
		return 0, false
	}

	decision, err := d.s.Read(1)
	if err != nil {
		return 0, false
	}
	bufLen := uint32(len(d.buf))

	if decision == 0 {
		v, err := d.s.Read(d.bitsPerSymbol)
		if err != nil {
			return 0, false
		}
		b := byte(v)
		d.buf[d.writeIndex%bufLen] = b
		dest[0] = b
		d.writeIndex++
		d.produced++
		return 1, true
	}

	token, err := d.s.Read(d.bitsPerToken)
	if err != nil {
		return 0, false
	}
	distance := token % (d.actualMaxDistance + 1)
	length := token/(d.actualMaxDistance+1) + d.actualMinLength

	for i := uint32(0); i < length; i++ {
		srcIdx := (d.writeIndex + bufLen - distance - 1) % bufLen
		b := d.buf[srcIdx]
		d.buf[d.writeIndex%bufLen] = b
		dest[i] = b
		d.writeIndex++
	}
	d.produced += length
	return int(length), true
}
