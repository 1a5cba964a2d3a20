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

package subcodec

import (
	"math/bits"

	"github.com/embedded-codecs/microcodec/lib/bitstream"
	"github.com/embedded-codecs/microcodec/lib/ucode"
)

const (
	frameLengthChunk, frameLengthDelta = 6, 0
	golombCountChunk, golombCountDelta = 6, 0
	golombMChunk, golombMDelta         = 6, 0
)

func writeFrameLength(s *bitstream.BitStream, length uint32) error {
	return ucode.WriteLomont1(s, length, frameLengthChunk, frameLengthDelta)
}

func readFrameLength(s *bitstream.BitStream) (uint32, error) {
	return ucode.ReadLomont1(s, frameLengthChunk, frameLengthDelta)
}

// golombBitLength returns the exact bit count WriteGolomb(v, m) would
// produce, without building a stream: the unary quotient plus a Truncated(m)
// remainder.
func golombBitLength(v, m uint32) uint32 {
	q := v / m
	k := uint32(bits.Len32(m) - 1)
	u := (uint32(1) << (k + 1)) - m
	r := v % m
	remBits := k
	if r >= u {
		remBits = k + 1
	}
	return q + 1 + remBits
}

func totalGolombBits(values []uint32, m uint32) uint32 {
	var total uint32
	for _, v := range values {
		total += golombBitLength(v, m)
	}
	return total
}

// bestGolombM searches for the divisor minimizing the total encoded length
// of values: start at the smallest power of two >= the max value, halve
// while length keeps improving, binary-search the surrounding range, then
// probe +-1 around the winner.
func bestGolombM(values []uint32) uint32 {
	var maxV uint32
	for _, v := range values {
		if v > maxV {
			maxV = v
		}
	}
	if maxV == 0 {
		return 1
	}

	start := uint32(1) << uint32(bits.Len32(maxV-1))
	m := start
	bestBits := totalGolombBits(values, m)
	for cand := start / 2; cand >= 1; cand /= 2 {
		b := totalGolombBits(values, cand)
		if b < bestBits {
			bestBits = b
			m = cand
		} else {
			break
		}
		if cand == 1 {
			break
		}
	}

	lo, hi := m/2, m*2
	if lo < 1 {
		lo = 1
	}
	if hi < 1 {
		hi = 1
	}
	for lo < hi {
		mid := lo + (hi-lo)/2
		if mid == lo {
			break
		}
		bLo := totalGolombBits(values, mid)
		bHi := totalGolombBits(values, mid+1)
		if bLo <= bHi {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	cand := lo
	if b := totalGolombBits(values, cand); b < bestBits {
		bestBits = b
		m = cand
	}

	for _, probe := range []uint32{m - 1, m + 1} {
		if probe < 1 {
			continue
		}
		if b := totalGolombBits(values, probe); b < bestBits {
			bestBits = b
			m = probe
		}
	}
	return m
}

// EncodeGolomb writes values as a self-contained Golomb(optimal-m) frame:
// list length+1 via Lomont-1(6,0), m via Lomont-1(6,0), then each value's
// Golomb-m codeword.
func EncodeGolomb(values []uint32) (*bitstream.BitStream, error) {
	s := bitstream.New()
	if err := ucode.WriteLomont1(s, uint32(len(values))+1, golombCountChunk, golombCountDelta); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return s, nil
	}
	m := bestGolombM(values)
	if err := ucode.WriteLomont1(s, m, golombMChunk, golombMDelta); err != nil {
		return nil, err
	}
	for _, v := range values {
		if err := ucode.WriteGolomb(s, v, m); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// DecodeGolomb reverses EncodeGolomb.
func DecodeGolomb(s *bitstream.BitStream) ([]uint32, error) {
	lenPlusOne, err := ucode.ReadLomont1(s, golombCountChunk, golombCountDelta)
	if err != nil {
		return nil, err
	}
	if lenPlusOne == 0 {
		return nil, nil
	}
	count := lenPlusOne - 1
	if count == 0 {
		return []uint32{}, nil
	}
	m, err := ucode.ReadLomont1(s, golombMChunk, golombMDelta)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	for i := range out {
		v, err := ucode.ReadGolomb(s, m)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
