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

package ucode

import "github.com/embedded-codecs/microcodec/lib/bitstream"

// bascLengthChunk and bascLengthDelta parameterize the Lomont-1 code used for
// BASC's own length and bit-length prefixes.
const (
	bascLengthChunk = 6
	bascLengthDelta = 0
)

// WriteBASC appends values using Binary Adaptive Sequential Coding: the list
// length, then each value's bit length coded as a delta against the previous
// value's bit length (shrinking deltas cost one bit, growing deltas cost
// their magnitude in unary), followed by the value itself with its leading
// bit elided where implied. This is the wire format of the Arithmetic
// codec's frequency table.
func WriteBASC(s *bitstream.BitStream, values []uint32) error {
	if err := WriteLomont1(s, uint32(len(values))+1, bascLengthChunk, bascLengthDelta); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	prevB := bitLen32(values[0])
	if err := WriteLomont1(s, uint32(prevB), bascLengthChunk, bascLengthDelta); err != nil {
		return err
	}
	s.Write(values[0], prevB)
	for _, v := range values[1:] {
		b := bitLen32(v)
		if b <= prevB {
			s.Write(0, 1)
			s.Write(v, prevB)
		} else {
			diff := b - prevB
			for i := uint8(0); i < diff; i++ {
				s.Write(1, 1)
			}
			s.Write(0, 1)
			s.Write(v, b-1)
		}
		prevB = b
	}
	return nil
}

// ReadBASC decodes a list written by WriteBASC.
func ReadBASC(s *bitstream.BitStream) ([]uint32, error) {
	lenPlusOne, err := ReadLomont1(s, bascLengthChunk, bascLengthDelta)
	if err != nil {
		return nil, err
	}
	if lenPlusOne == 0 {
		return nil, errOverflow
	}
	n := lenPlusOne - 1
	if n == 0 {
		return nil, nil
	}
	values := make([]uint32, n)
	prevBU, err := ReadLomont1(s, bascLengthChunk, bascLengthDelta)
	if err != nil {
		return nil, err
	}
	prevB := uint8(prevBU)
	v0, err := s.Read(prevB)
	if err != nil {
		return nil, err
	}
	values[0] = v0
	for i := uint32(1); i < n; i++ {
		bit, err := s.Read(1)
		if err != nil {
			return nil, err
		}
		if bit == 0 {
			v, err := s.Read(prevB)
			if err != nil {
				return nil, err
			}
			values[i] = v
		} else {
			diff := uint8(1)
			for {
				b, err := s.Read(1)
				if err != nil {
					return nil, err
				}
				if b == 0 {
					break
				}
				diff++
			}
			b := prevB + diff
			rest, err := s.Read(b - 1)
			if err != nil {
				return nil, err
			}
			v := (uint32(1) << (b - 1)) | rest
			values[i] = v
			prevB = b
			continue
		}
		prevB = bitLen32(values[i])
	}
	return values, nil
}
