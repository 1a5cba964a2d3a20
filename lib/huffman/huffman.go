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

package huffman

import (
	"errors"

	"github.com/embedded-codecs/microcodec/lib/bitstream"
	"github.com/embedded-codecs/microcodec/lib/ucode"
)

// EndToken terminates an incremental decode, mirroring the sentinel every
// codec in this module returns at end-of-stream.
const EndToken uint32 = 0xFFFFFFFF

// unknownLength is the header value marking an undeclared symbol count.
// Encode always writes the actual count, including for LZCL's sub-streams,
// so streams it produces never carry this value; Decode and Decompress
// reject it.
const unknownLength uint32 = 0xFFFFFFFF

var (
	// ErrCorruptHeader is returned for an internally inconsistent header.
	ErrCorruptHeader = errors.New("huffman: corrupt header")
	// ErrCapacityExceeded is returned when a decode exceeds destCapacity.
	ErrCapacityExceeded = errors.New("huffman: output exceeds destination capacity")
	// ErrSymbolOverflow is returned when a decoded symbol does not fit a byte.
	ErrSymbolOverflow = errors.New("huffman: symbol does not fit in a byte")
)

const (
	byteLengthChunk, byteLengthDelta         = 6, 0
	bitsPerSymbolChunk, bitsPerSymbolDelta   = 3, 0
	bitsPerCCCountChunk, bitsPerCCCountDelta = 3, 0
	minLenChunk, minLenDelta                 = 2, 0
	// lengthSpanChunk/Delta code (maxLen-minLen)-1, per the wire table; a
	// 2-symbol alphabet has maxLen == minLen, which has no "-1" floor, so
	// that case is flagged by the single-code-length bit ahead of this
	// field instead of being folded into it.
	lengthSpanChunk, lengthSpanDelta = 4, 0
)

// Codeword is a canonical Huffman codeword: a bit value and its length.
type Codeword struct {
	Value  uint32
	Length uint8
}

// Encode builds a canonical Huffman code for symbols and appends the
// header-plus-body to a fresh bit-stream.
func Encode(symbols []uint32) (*bitstream.BitStream, error) {
	s := bitstream.New()
	if err := ucode.WriteLomont1(s, uint32(len(symbols)), byteLengthChunk, byteLengthDelta); err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return s, nil
	}

	order := make([]uint32, 0)
	counts := make(map[uint32]uint64)
	seen := make(map[uint32]bool)
	for _, sym := range symbols {
		if !seen[sym] {
			seen[sym] = true
			order = append(order, sym)
		}
		counts[sym]++
	}

	lengths := buildLengths(order, counts)
	leaves, codewords := canonicalize(lengths)

	minLen := leaves[0].length
	maxLen := leaves[len(leaves)-1].length

	var maxSymbol uint32
	rowCounts := make([]uint32, int(maxLen-minLen)+1)
	for _, lf := range leaves {
		if lf.symbol > maxSymbol {
			maxSymbol = lf.symbol
		}
		rowCounts[lf.length-minLen]++
	}
	var maxRowCount uint32
	for _, c := range rowCounts {
		if c > maxRowCount {
			maxRowCount = c
		}
	}

	bitsPerSymbol := bitLen32(maxSymbol)
	bitsPerCodelengthCount := bitLen32(maxRowCount)

	if err := ucode.WriteLomont1(s, uint32(bitsPerSymbol)-1, bitsPerSymbolChunk, bitsPerSymbolDelta); err != nil {
		return nil, err
	}
	if err := ucode.WriteLomont1(s, uint32(bitsPerCodelengthCount)-1, bitsPerCCCountChunk, bitsPerCCCountDelta); err != nil {
		return nil, err
	}
	if err := ucode.WriteLomont1(s, uint32(minLen)-1, minLenChunk, minLenDelta); err != nil {
		return nil, err
	}
	if span := maxLen - minLen; span == 0 {
		// Single code length (e.g. a 1- or 2-symbol alphabet, or 2^k equally
		// frequent symbols): the span field has no
		// "-1" floor here, so this bit flags it instead of being encoded.
		s.Write(1, 1)
	} else {
		s.Write(0, 1)
		if err := ucode.WriteLomont1(s, uint32(span)-1, lengthSpanChunk, lengthSpanDelta); err != nil {
			return nil, err
		}
	}

	li := 0
	for l := minLen; l <= maxLen; l++ {
		rowCount := rowCounts[l-minLen]
		s.Write(rowCount, bitsPerCodelengthCount)
		for c := uint32(0); c < rowCount; c++ {
			s.Write(leaves[li].symbol, bitsPerSymbol)
			li++
		}
	}

	for _, sym := range symbols {
		cw := codewords[sym]
		s.Write(cw.Value, cw.Length)
	}
	return s, nil
}

// Compress Huffman-encodes input as a byte stream.
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
	if count == unknownLength {
		return nil, ErrCorruptHeader
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
		return nil, errors.New("huffman: short decode")
	}
	return out, nil
}
