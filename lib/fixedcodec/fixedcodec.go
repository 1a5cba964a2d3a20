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

// Package fixedcodec is the simplest of the four sub-codecs LZCL can choose
// between: every symbol is written in the same header-declared bit width.
// It is the cheap fallback when a stream's symbols carry no exploitable
// skew for Huffman or Arithmetic to find, and no geometric shape for
// Golomb to exploit.
package fixedcodec

import (
	"errors"
	"math/bits"

	"github.com/embedded-codecs/microcodec/lib/bitstream"
	"github.com/embedded-codecs/microcodec/lib/ucode"
)

// ErrTooWide is returned when a symbol does not fit in 32 bits.
var ErrTooWide = errors.New("fixedcodec: symbol exceeds 32 bits")

const (
	countChunk = 6
	countDelta = 0
	widthChunk = 3
	widthDelta = 0
)

// Encode appends values to a fresh bit-stream: the list length, the
// bit-width needed by the largest value, then each value in that many bits.
func Encode(values []uint32) (*bitstream.BitStream, error) {
	s := bitstream.New()
	if err := ucode.WriteLomont1(s, uint32(len(values))+1, countChunk, countDelta); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return s, nil
	}
	width := uint8(1)
	for _, v := range values {
		if b := bitLen(v); b > width {
			width = b
		}
	}
	if err := ucode.WriteLomont1(s, uint32(width)-1, widthChunk, widthDelta); err != nil {
		return nil, err
	}
	for _, v := range values {
		s.Write(v, width)
	}
	return s, nil
}

// Decode reads a value list written by Encode, starting at s's read cursor.
func Decode(s *bitstream.BitStream) ([]uint32, error) {
	countPlusOne, err := ucode.ReadLomont1(s, countChunk, countDelta)
	if err != nil {
		return nil, err
	}
	if countPlusOne == 0 {
		return nil, errors.New("fixedcodec: corrupt length prefix")
	}
	count := countPlusOne - 1
	if count == 0 {
		return nil, nil
	}
	widthMinusOne, err := ucode.ReadLomont1(s, widthChunk, widthDelta)
	if err != nil {
		return nil, err
	}
	width := uint8(widthMinusOne) + 1
	values := make([]uint32, count)
	for i := range values {
		v, err := s.Read(width)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// BitLength returns the number of bits Encode would emit for values, without
// constructing the bit-stream; used by LZCL's per-substream codec selection.
func BitLength(values []uint32) uint32 {
	length := lomont1Length(uint32(len(values))+1, countChunk, countDelta)
	if len(values) == 0 {
		return length
	}
	width := uint8(1)
	for _, v := range values {
		if b := bitLen(v); b > width {
			width = b
		}
	}
	length += lomont1Length(uint32(width)-1, widthChunk, widthDelta)
	length += uint32(len(values)) * uint32(width)
	return length
}

func bitLen(v uint32) uint8 {
	if n := uint8(bits.Len32(v)); n > 0 {
		return n
	}
	return 1
}

// lomont1Length computes the bit length Lomont-1(chunkSize, deltaChunk) would
// use to encode value, without writing it.
func lomont1Length(value uint32, chunkSize uint8, deltaChunk int8) uint32 {
	s := bitstream.New()
	_ = ucode.WriteLomont1(s, value, chunkSize, deltaChunk)
	return s.Len()
}
