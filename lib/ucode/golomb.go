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

// errBadGolombM is returned for a Golomb-m divisor of zero.
var errBadGolombM = errors.New("ucode: golomb-m divisor must be at least 1")

// WriteGolomb appends v (v >= 0) using Golomb coding with divisor m: the
// quotient v/m in unary (that many 1 bits then a terminating 0), followed by
// the remainder v%m coded as Truncated(m). m == 1 degenerates to plain unary.
func WriteGolomb(s *bitstream.BitStream, v uint32, m uint32) error {
	if m == 0 {
		return errBadGolombM
	}
	q := v / m
	r := v % m
	for i := uint32(0); i < q; i++ {
		s.Write(1, 1)
	}
	s.Write(0, 1)
	return WriteTruncated(s, r, m)
}

// ReadGolomb decodes a Golomb-m codeword.
func ReadGolomb(s *bitstream.BitStream, m uint32) (uint32, error) {
	if m == 0 {
		return 0, errBadGolombM
	}
	var q uint32
	for {
		b, err := s.Read(1)
		if err != nil {
			return 0, err
		}
		if b == 0 {
			break
		}
		q++
	}
	r, err := ReadTruncated(s, m)
	if err != nil {
		return 0, err
	}
	return q*m + r, nil
}
