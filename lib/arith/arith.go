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

// Package arith implements a static-frequency range coder: a fixed-alphabet
// probability model built once from the whole input, stored in the header
// as a BASC-coded frequency table, and an E1/E2/E3-renormalizing coder
// operating on the interval [0, Q100).
package arith

import (
	"errors"

	"github.com/embedded-codecs/microcodec/lib/bitstream"
	"github.com/embedded-codecs/microcodec/lib/ucode"
)

// EndToken terminates an incremental decode.
const EndToken uint32 = 0xFFFFFFFF

// Interval boundaries of the coder's working range [0, Q100).
const (
	Q25  = uint64(1) << 29
	Q50  = 2 * Q25
	Q75  = 3 * Q25
	Q100 = 4 * Q25
)

var (
	// ErrCapacityExceeded is returned when a decode exceeds destCapacity.
	ErrCapacityExceeded = errors.New("arith: output exceeds destination capacity")
	// ErrSymbolOverflow is returned when a decoded symbol does not fit a byte.
	ErrSymbolOverflow = errors.New("arith: symbol does not fit in a byte")
	// ErrTotalTooLarge is returned when the frequency sum would overflow the
	// coder's precision (total must stay below Q25).
	ErrTotalTooLarge = errors.New("arith: frequency total too large for coder precision")
	// ErrCorruptHeader is returned for an internally inconsistent header.
	ErrCorruptHeader = errors.New("arith: corrupt header")
)

const (
	totalChunk, totalDelta         = 6, 0
	bitLengthChunk, bitLengthDelta = 8, -1
	symbolChunk, symbolDelta       = 6, 0
	tableLenChunk, tableLenDelta   = 6, 0
)

// model is the encoder's fixed-alphabet frequency table.
type model struct {
	symbolMin, symbolMax uint32
	counts               []uint32 // counts[i] is the frequency of symbol symbolMin+i
	total                uint32
}

func buildModel(symbols []uint32) model {
	var m model
	if len(symbols) == 0 {
		return m
	}
	m.symbolMin, m.symbolMax = symbols[0], symbols[0]
	for _, sym := range symbols {
		if sym < m.symbolMin {
			m.symbolMin = sym
		}
		if sym > m.symbolMax {
			m.symbolMax = sym
		}
	}
	m.counts = make([]uint32, m.symbolMax-m.symbolMin+1)
	for _, sym := range symbols {
		m.counts[sym-m.symbolMin]++
	}
	m.total = uint32(len(symbols))
	return m
}

// Encode builds a static frequency model for symbols and range-codes them
// into a fresh bit-stream.
func Encode(symbols []uint32) (*bitstream.BitStream, error) {
	s := bitstream.New()
	m := buildModel(symbols)
	if err := ucode.WriteLomont1(s, m.total, totalChunk, totalDelta); err != nil {
		return nil, err
	}
	if m.total == 0 {
		return s, nil
	}
	if uint64(m.total) >= Q25 {
		return nil, ErrTotalTooLarge
	}

	body, err := encodeBody(symbols, m)
	if err != nil {
		return nil, err
	}
	table := bitstream.New()
	if err := ucode.WriteBASC(table, m.counts); err != nil {
		return nil, err
	}

	if err := ucode.WriteLomont1(s, body.Len(), bitLengthChunk, bitLengthDelta); err != nil {
		return nil, err
	}
	if err := ucode.WriteLomont1(s, m.symbolMin, symbolChunk, symbolDelta); err != nil {
		return nil, err
	}
	if err := ucode.WriteLomont1(s, m.symbolMax, symbolChunk, symbolDelta); err != nil {
		return nil, err
	}
	if err := ucode.WriteLomont1(s, table.Len(), tableLenChunk, tableLenDelta); err != nil {
		return nil, err
	}
	if err := s.Append(table); err != nil {
		return nil, err
	}
	if err := s.Append(body); err != nil {
		return nil, err
	}
	return s, nil
}

// encodeBody range-codes symbols against m's cumulative frequencies.
func encodeBody(symbols []uint32, m model) (*bitstream.BitStream, error) {
	prefix := make([]uint64, len(m.counts)+1)
	for i, c := range m.counts {
		prefix[i+1] = prefix[i] + uint64(c)
	}

	s := bitstream.New()
	low, high := uint64(0), Q100-1
	var scaling uint32

	for _, sym := range symbols {
		idx := sym - m.symbolMin
		if int(idx) >= len(m.counts) || m.counts[idx] == 0 {
			return nil, errors.New("arith: symbol outside model alphabet")
		}
		lowCount := prefix[idx]
		highCount := prefix[idx+1]
		width := high - low + 1
		step := width / uint64(m.total)
		high = low + step*highCount - 1
		low = low + step*lowCount

	renorm:
		for {
			switch {
			case high < Q50:
				s.Write(0, 1)
				for i := uint32(0); i < scaling; i++ {
					s.Write(1, 1)
				}
				scaling = 0
				low *= 2
				high = 2*high + 1
			case low >= Q50:
				s.Write(1, 1)
				for i := uint32(0); i < scaling; i++ {
					s.Write(0, 1)
				}
				scaling = 0
				low = 2 * (low - Q50)
				high = 2*(high-Q50) + 1
			case low >= Q25 && high < Q75:
				low -= Q25
				high -= Q25
				scaling++
				low *= 2
				high = 2*high + 1
			default:
				break renorm
			}
		}
	}

	// Termination is deliberately asymmetric: the low < Q25 branch emits its
	// full backlog, the other branch emits only its two tag bits and leans
	// on the decoder's end-of-stream bits reading as zero.
	if low < Q25 {
		s.Write(0, 1)
		s.Write(1, 1)
		for i := uint32(0); i < scaling+1; i++ {
			s.Write(1, 1)
		}
	} else {
		s.Write(1, 1)
		s.Write(0, 1)
	}
	return s, nil
}

// Compress range-codes input as a byte stream.
func Compress(input []byte) ([]byte, error) {
	symbols := make([]uint32, len(input))
	for i, b := range input {
		symbols[i] = uint32(b)
	}
	s, err := Encode(symbols)
	if err != nil {
		return nil, err
	}
	return s.ToBytes(), nil
}

// Decompress reverses Compress, failing if the decoded length exceeds
// destCapacity.
func Decompress(input []byte, destCapacity uint32) ([]byte, error) {
	s := bitstream.FromBytes(input)
	d, count, err := NewDecoder(s)
	if err != nil {
		return nil, err
	}
	if count > destCapacity {
		return nil, ErrCapacityExceeded
	}
	out := make([]byte, 0, count)
	for {
		sym, ok := d.Symbol()
		if !ok {
			break
		}
		if sym > 255 {
			return nil, ErrSymbolOverflow
		}
		out = append(out, byte(sym))
	}
	if uint32(len(out)) != count {
		return nil, errors.New("arith: short decode")
	}
	return out, nil
}
