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
	"math/bits"

	"github.com/embedded-codecs/microcodec/lib/bitstream"
)

// errBadTruncatedN is returned for a Truncated(n) domain size of zero.
var errBadTruncatedN = errors.New("ucode: truncated binary domain size must be at least 1")

// errTruncatedRange is returned when v does not fit in [0, n).
var errTruncatedRange = errors.New("ucode: value out of truncated binary domain")

// WriteTruncated appends v (0 <= v < n) using the truncated binary code: with
// k = floor(log2 n), the u = 2^(k+1) - n lowest values are coded in k bits,
// the remaining n - u values in k+1 bits.
func WriteTruncated(s *bitstream.BitStream, v uint32, n uint32) error {
	if n == 0 {
		return errBadTruncatedN
	}
	if v >= n {
		return errTruncatedRange
	}
	if n == 1 {
		return nil
	}
	k := uint8(bits.Len32(n) - 1)
	u := (uint32(1) << (k + 1)) - n
	if v < u {
		s.Write(v, k)
		return nil
	}
	s.Write(v+u, k+1)
	return nil
}

// ReadTruncated decodes a Truncated(n) codeword.
func ReadTruncated(s *bitstream.BitStream, n uint32) (uint32, error) {
	if n == 0 {
		return 0, errBadTruncatedN
	}
	if n == 1 {
		return 0, nil
	}
	k := uint8(bits.Len32(n) - 1)
	u := (uint32(1) << (k + 1)) - n
	prefix, err := s.Read(k)
	if err != nil {
		return 0, err
	}
	if prefix < u {
		return prefix, nil
	}
	bit, err := s.Read(1)
	if err != nil {
		return 0, err
	}
	return (prefix<<1 | bit) - u, nil
}
