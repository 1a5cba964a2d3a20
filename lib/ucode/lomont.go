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

// Package ucode implements the family of universal integer codes used to
// encode every header field in every codec: Lomont-1 (the workhorse, used by
// all four codecs' headers), Elias Gamma/Delta/Omega, an Even-Rodeh-style
// code and a Stout-k (Start-Step-Stop) code, Truncated binary, Golomb-m, and
// BASC (the native format of the Arithmetic codec's frequency table).
package ucode

import (
	"errors"

	"github.com/embedded-codecs/microcodec/lib/bitstream"
)

// errOverflow is returned when a decoded value cannot fit in 32 bits.
var errOverflow = errors.New("ucode: decoded value overflows 32 bits")

// errBadChunkSize is returned for a Lomont-1 chunk size of zero.
var errBadChunkSize = errors.New("ucode: chunk size must be at least 1")

// nextChunkSize applies Lomont-1's per-chunk size delta, clamped to a
// minimum of 1.
func nextChunkSize(cs uint8, delta int8) uint8 {
	n := int16(cs) + int16(delta)
	if n < 1 {
		n = 1
	}
	if n > bitstream.MaxBits {
		n = bitstream.MaxBits
	}
	return uint8(n)
}

// WriteLomont1 appends value using the Lomont-1(chunkSize, deltaChunk) code:
// successive chunkSize-bit chunks, low bits of value first, each preceded by
// a continuation bit (1 = another chunk follows, 0 = this was the last).
func WriteLomont1(s *bitstream.BitStream, value uint32, chunkSize uint8, deltaChunk int8) error {
	if chunkSize == 0 {
		return errBadChunkSize
	}
	cs := chunkSize
	v := uint64(value)
	for {
		mask := (uint64(1) << cs) - 1
		chunk := v & mask
		rest := v >> cs
		hasMore := rest != 0
		if hasMore {
			s.Write(1, 1)
		} else {
			s.Write(0, 1)
		}
		s.Write(uint32(chunk), cs)
		v = rest
		if !hasMore {
			return nil
		}
		cs = nextChunkSize(cs, deltaChunk)
	}
}

// ReadLomont1 decodes a Lomont-1(chunkSize, deltaChunk) value from s's read
// cursor, advancing it past the code.
func ReadLomont1(s *bitstream.BitStream, chunkSize uint8, deltaChunk int8) (uint32, error) {
	return readLomont1(func(n uint8) (uint32, error) { return s.Read(n) }, chunkSize, deltaChunk)
}

// ReadLomont1From decodes a Lomont-1(chunkSize, deltaChunk) value starting at
// *pos without moving s's own read cursor, advancing *pos past the code.
// BASCReplay uses it to re-walk the Arithmetic codec's in-stream frequency
// table without materializing it.
func ReadLomont1From(s *bitstream.BitStream, pos *uint32, chunkSize uint8, deltaChunk int8) (uint32, error) {
	return readLomont1(func(n uint8) (uint32, error) { return s.ReadFrom(pos, n) }, chunkSize, deltaChunk)
}

func readLomont1(read func(uint8) (uint32, error), chunkSize uint8, deltaChunk int8) (uint32, error) {
	if chunkSize == 0 {
		return 0, errBadChunkSize
	}
	cs := chunkSize
	var value uint64
	var shift uint
	for {
		cont, err := read(1)
		if err != nil {
			return 0, err
		}
		chunk, err := read(cs)
		if err != nil {
			return 0, err
		}
		value |= uint64(chunk) << shift
		shift += uint(cs)
		if cont == 0 {
			break
		}
		cs = nextChunkSize(cs, deltaChunk)
	}
	if value > 0xFFFFFFFF {
		return 0, errOverflow
	}
	return uint32(value), nil
}
