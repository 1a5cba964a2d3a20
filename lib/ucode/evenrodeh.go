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

// WriteEvenRodeh appends v (v >= 0) using this package's Even-Rodeh-style
// code: like Elias Omega, a chain of binary groups each holding the bit
// length of the next outer group, but bottoming out at a fixed 3-bit base
// field (covering 1..7) instead of recursing down to 1, and using an
// explicit continuation flag before each outer group instead of a single
// trailing terminator. v+1 is coded so that v == 0 is representable.
func WriteEvenRodeh(s *bitstream.BitStream, v uint32) error {
	m := uint32(v) + 1
	var stack []uint32
	for m > 7 {
		stack = append(stack, m)
		m = uint32(bitLen32(m))
	}
	s.Write(m, 3)
	for i := len(stack) - 1; i >= 0; i-- {
		val := stack[i]
		lbits := bitLen32(val) - 1
		s.Write(1, 1)
		s.Write(val, lbits)
	}
	s.Write(0, 1)
	return nil
}

// ReadEvenRodeh decodes a codeword written by WriteEvenRodeh.
func ReadEvenRodeh(s *bitstream.BitStream) (uint32, error) {
	cur, err := s.Read(3)
	if err != nil {
		return 0, err
	}
	for {
		flag, err := s.Read(1)
		if err != nil {
			return 0, err
		}
		if flag == 0 {
			break
		}
		lbits := uint8(cur - 1)
		extra, err := s.Read(lbits)
		if err != nil {
			return 0, err
		}
		cur = (uint32(1) << lbits) | extra
	}
	return cur - 1, nil
}
