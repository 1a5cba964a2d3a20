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

import (
	"errors"

	"github.com/embedded-codecs/microcodec/lib/bitstream"
)

// errBadStoutK is returned for a Stout-k parameter of zero.
var errBadStoutK = errors.New("ucode: stout-k parameter must be at least 1")

// WriteStoutK appends v (v >= 0) using a Start-Step-Stop(k, k) code: block i
// (i = 0, 1, 2, ...) covers a run of 2^(k+i*k) consecutive values starting
// right after the previous block; v is encoded as i unary one-bits, a
// terminating zero-bit, then the offset of v within its block in (k+i*k)
// bits.
func WriteStoutK(s *bitstream.BitStream, v uint32, k uint8) error {
	if k == 0 {
		return errBadStoutK
	}
	i := 0
	var offset uint64
	width := uint(k)
	for {
		span := uint64(1) << width
		if uint64(v) < offset+span {
			break
		}
		offset += span
		i++
		width += uint(k)
		if width > 32 {
			return errors.New("ucode: stout-k value out of range")
		}
	}
	for j := 0; j < i; j++ {
		s.Write(1, 1)
	}
	s.Write(0, 1)
	s.Write(uint32(uint64(v)-offset), uint8(width))
	return nil
}

// ReadStoutK decodes a codeword written by WriteStoutK.
func ReadStoutK(s *bitstream.BitStream, k uint8) (uint32, error) {
	if k == 0 {
		return 0, errBadStoutK
	}
	i := 0
	for {
		b, err := s.Read(1)
		if err != nil {
			return 0, err
		}
		if b == 0 {
			break
		}
		i++
	}
	var offset uint64
	width := uint(k)
	for j := 0; j < i; j++ {
		offset += uint64(1) << width
		width += uint(k)
	}
	diff, err := s.Read(uint8(width))
	if err != nil {
		return 0, err
	}
	return uint32(offset + uint64(diff)), nil
}
