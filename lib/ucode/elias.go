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

// errDomain is returned when a value is outside a code's domain (the Elias
// and Even-Rodeh families here only encode strictly positive integers).
var errDomain = errors.New("ucode: value outside code domain (want >= 1)")

// WriteEliasGamma appends v (v >= 1) using Elias Gamma coding: N-1 zero bits
// where N is v's bit length, then a 1 bit, then v's low N-1 bits.
func WriteEliasGamma(s *bitstream.BitStream, v uint32) error {
	if v == 0 {
		return errDomain
	}
	n := bitLen32(v)
	for i := uint8(0); i < n-1; i++ {
		s.Write(0, 1)
	}
	s.Write(1, 1)
	if n > 1 {
		s.Write(v, n-1)
	}
	return nil
}

// ReadEliasGamma decodes an Elias Gamma codeword.
func ReadEliasGamma(s *bitstream.BitStream) (uint32, error) {
	n := uint8(1)
	for {
		b, err := s.Read(1)
		if err != nil {
			return 0, err
		}
		if b == 1 {
			break
		}
		n++
	}
	if n == 1 {
		return 1, nil
	}
	rest, err := s.Read(n - 1)
	if err != nil {
		return 0, err
	}
	return (uint32(1) << (n - 1)) | rest, nil
}

// WriteEliasDelta appends v (v >= 1) using Elias Delta coding: the bit
// length N of v, itself Elias-Gamma coded, followed by v's low N-1 bits.
func WriteEliasDelta(s *bitstream.BitStream, v uint32) error {
	if v == 0 {
		return errDomain
	}
	n := uint32(bitLen32(v))
	if err := WriteEliasGamma(s, n); err != nil {
		return err
	}
	if n > 1 {
		s.Write(v, uint8(n-1))
	}
	return nil
}

// ReadEliasDelta decodes an Elias Delta codeword.
func ReadEliasDelta(s *bitstream.BitStream) (uint32, error) {
	n, err := ReadEliasGamma(s)
	if err != nil {
		return 0, err
	}
	if n == 1 {
		return 1, nil
	}
	rest, err := s.Read(uint8(n - 1))
	if err != nil {
		return 0, err
	}
	return (uint32(1) << (n - 1)) | rest, nil
}

// WriteEliasOmega appends v (v >= 1) using Elias Omega coding: a chain of
// binary groups, each holding one less than the bit length of the next outer
// group, innermost-first, followed by a terminating 0 bit.
func WriteEliasOmega(s *bitstream.BitStream, v uint32) error {
	if v == 0 {
		return errDomain
	}
	var stack []uint32
	n := v
	for n > 1 {
		stack = append(stack, n)
		n = uint32(bitLen32(n)) - 1
	}
	for i := len(stack) - 1; i >= 0; i-- {
		m := stack[i]
		s.Write(m, bitLen32(m))
	}
	s.Write(0, 1)
	return nil
}

// ReadEliasOmega decodes an Elias Omega codeword.
func ReadEliasOmega(s *bitstream.BitStream) (uint32, error) {
	n := uint32(1)
	for {
		b, err := s.Read(1)
		if err != nil {
			return 0, err
		}
		if b == 0 {
			return n, nil
		}
		extra, err := s.Read(uint8(n))
		if err != nil {
			return 0, err
		}
		n = (uint32(1) << n) | extra
	}
}
