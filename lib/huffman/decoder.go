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

// Decoder holds the constant-memory state of an in-stream Huffman decode:
// a handful of header scalars plus a cursor. It never materializes a code
// table; Symbol re-reads the header's per-length rows on every call.
type Decoder struct {
	s                      *bitstream.BitStream
	bitsPerSymbol          uint8
	bitsPerCodelengthCount uint8
	minLen, maxLen         uint8
	tablePosition          uint32
	remaining              uint32
	produced               uint32
}

// NewDecoder parses the header at s's current read cursor and returns a
// Decoder positioned at the start of the symbol body, plus the declared
// symbol count. A header declaring unknownLength yields a Decoder whose
// Symbol stops only when the stream runs out.
func NewDecoder(s *bitstream.BitStream) (*Decoder, uint32, error) {
	byteLength, err := ucode.ReadLomont1(s, byteLengthChunk, byteLengthDelta)
	if err != nil {
		return nil, 0, err
	}
	d := &Decoder{s: s, remaining: byteLength}
	if byteLength == 0 {
		return d, 0, nil
	}

	bitsPerSymbolMinus1, err := ucode.ReadLomont1(s, bitsPerSymbolChunk, bitsPerSymbolDelta)
	if err != nil {
		return nil, 0, err
	}
	bitsPerCCCountMinus1, err := ucode.ReadLomont1(s, bitsPerCCCountChunk, bitsPerCCCountDelta)
	if err != nil {
		return nil, 0, err
	}
	minLenMinus1, err := ucode.ReadLomont1(s, minLenChunk, minLenDelta)
	if err != nil {
		return nil, 0, err
	}
	singleLenBit, err := s.Read(1)
	if err != nil {
		return nil, 0, err
	}

	d.bitsPerSymbol = uint8(bitsPerSymbolMinus1) + 1
	d.bitsPerCodelengthCount = uint8(bitsPerCCCountMinus1) + 1
	d.minLen = uint8(minLenMinus1) + 1
	if singleLenBit == 1 {
		d.maxLen = d.minLen
	} else {
		lengthSpanMinus1, err := ucode.ReadLomont1(s, lengthSpanChunk, lengthSpanDelta)
		if err != nil {
			return nil, 0, err
		}
		d.maxLen = d.minLen + uint8(lengthSpanMinus1) + 1
	}
	if d.maxLen < d.minLen {
		return nil, 0, ErrCorruptHeader
	}

	d.tablePosition = s.Pos()
	for l := d.minLen; l <= d.maxLen; l++ {
		count, err := s.Read(d.bitsPerCodelengthCount)
		if err != nil {
			return nil, 0, err
		}
		s.SetPos(s.Pos() + count*uint32(d.bitsPerSymbol))
	}
	return d, byteLength, nil
}

// Symbol decodes one symbol, returning (EndToken, false) once remaining
// symbols are exhausted or the stream is corrupt.
func (d *Decoder) Symbol() (uint32, bool) {
	if d.remaining != unknownLength && d.produced >= d.remaining {
		return EndToken, false
	}
	accumulator, err := d.s.Read(d.minLen)
	if err != nil {
		return EndToken, false
	}
	firstCodewordOnRow := uint32(0)
	p := d.tablePosition
	for l := d.minLen; l <= d.maxLen; l++ {
		count, err := d.s.ReadFrom(&p, d.bitsPerCodelengthCount)
		if err != nil {
			return EndToken, false
		}
		if count > 0 && accumulator-firstCodewordOnRow < count {
			offset := (accumulator - firstCodewordOnRow) * uint32(d.bitsPerSymbol)
			symPos := p + offset
			sym, err := d.s.ReadFrom(&symPos, d.bitsPerSymbol)
			if err != nil {
				return EndToken, false
			}
			d.produced++
			return sym, true
		}
		firstCodewordOnRow += count
		bit, err := d.s.Read(1)
		if err != nil {
			return EndToken, false
		}
		accumulator = (accumulator << 1) | bit
		firstCodewordOnRow <<= 1
		p += count * uint32(d.bitsPerSymbol)
	}
	return EndToken, false
}

// Decode drives NewDecoder/Symbol to completion and returns every symbol;
// it requires a declared (not unknown) length.
func Decode(s *bitstream.BitStream) ([]uint32, error) {
	d, count, err := NewDecoder(s)
	if err != nil {
		return nil, err
	}
	if count == unknownLength {
		return nil, ErrCorruptHeader
	}
	out := make([]uint32, 0, count)
	for {
		sym, ok := d.Symbol()
		if !ok {
			break
		}
		out = append(out, sym)
	}
	if uint32(len(out)) != count {
		return nil, errors.New("huffman: short decode")
	}
	return out, nil
}
