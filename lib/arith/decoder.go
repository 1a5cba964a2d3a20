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

package arith

import (
	"errors"

	"github.com/embedded-codecs/microcodec/lib/bitstream"
	"github.com/embedded-codecs/microcodec/lib/ucode"
)

// bufferBits is wide enough to hold any value in [0, Q100): the decoder's
// "31-bit buffer".
const bufferBits = 31

// Decoder holds an in-progress range decode. The frequency table is never
// materialized: every Symbol call re-walks it from tableStart via
// ucode.BASCReplay.
type Decoder struct {
	s          *bitstream.BitStream
	symbolMin  uint32
	symbolMax  uint32
	total      uint32
	tableStart uint32
	regionEnd  uint32
	pos        uint32
	low, high  uint64
	buffer     uint64
	produced   uint32
}

// NewDecoder parses the header at s's current read cursor and returns a
// Decoder ready to produce total symbols (total may be 0).
func NewDecoder(s *bitstream.BitStream) (*Decoder, uint32, error) {
	total, err := ucode.ReadLomont1(s, totalChunk, totalDelta)
	if err != nil {
		return nil, 0, err
	}
	d := &Decoder{s: s, total: total}
	if total == 0 {
		return d, 0, nil
	}

	bitLength, err := ucode.ReadLomont1(s, bitLengthChunk, bitLengthDelta)
	if err != nil {
		return nil, 0, err
	}
	symbolMin, err := ucode.ReadLomont1(s, symbolChunk, symbolDelta)
	if err != nil {
		return nil, 0, err
	}
	symbolMax, err := ucode.ReadLomont1(s, symbolChunk, symbolDelta)
	if err != nil {
		return nil, 0, err
	}
	if symbolMax < symbolMin {
		return nil, 0, ErrCorruptHeader
	}
	tableBitLen, err := ucode.ReadLomont1(s, tableLenChunk, tableLenDelta)
	if err != nil {
		return nil, 0, err
	}

	d.symbolMin = symbolMin
	d.symbolMax = symbolMax
	d.tableStart = s.Pos()
	s.SetPos(s.Pos() + tableBitLen)

	regionStart := s.Pos()
	d.regionEnd = regionStart + bitLength
	d.pos = regionStart
	d.low, d.high = 0, Q100-1
	for i := 0; i < bufferBits; i++ {
		d.buffer = (d.buffer << 1) | uint64(d.readBit())
	}
	return d, total, nil
}

// readBit returns the next compressed-region bit, or 0 once the declared
// region (or the underlying stream) is exhausted -- the termination trick
// the asymmetric encoder relies on.
func (d *Decoder) readBit() uint32 {
	if d.pos >= d.regionEnd {
		return 0
	}
	bit, err := d.s.ReadFrom(&d.pos, 1)
	if err != nil {
		return 0
	}
	return bit
}

// Symbol decodes one symbol, returning (EndToken, false) once total symbols
// have been produced or the stream is corrupt.
func (d *Decoder) Symbol() (uint32, bool) {
	if d.produced >= d.total {
		return EndToken, false
	}

	width := d.high - d.low + 1
	step := width / uint64(d.total)
	target := (d.buffer - d.low) / step

	replay, count, err := ucode.NewBASCReplay(d.s, d.tableStart)
	if err != nil {
		return EndToken, false
	}
	var lowCount, highCount uint64
	var symbolIdx uint32
	found := false
	for i := uint32(0); i < count; i++ {
		c, err := replay.Next()
		if err != nil {
			return EndToken, false
		}
		highCount = lowCount + uint64(c)
		if highCount > target {
			symbolIdx = i
			found = true
			break
		}
		lowCount = highCount
	}
	if !found {
		return EndToken, false
	}

	d.high = d.low + step*highCount - 1
	d.low = d.low + step*lowCount

renorm:
	for {
		switch {
		case d.high < Q50:
			// no offset to remove
		case d.low >= Q50:
			d.low -= Q50
			d.high -= Q50
			d.buffer -= Q50
		case d.low >= Q25 && d.high < Q75:
			d.low -= Q25
			d.high -= Q25
			d.buffer -= Q25
		default:
			break renorm
		}
		bit := d.readBit()
		d.low *= 2
		d.high = 2*d.high + 1
		d.buffer = 2*d.buffer + uint64(bit)
	}

	d.produced++
	return d.symbolMin + symbolIdx, true
}

// Decode drives NewDecoder/Symbol to completion and returns every symbol.
func Decode(s *bitstream.BitStream) ([]uint32, error) {
	d, count, err := NewDecoder(s)
	if err != nil {
		return nil, err
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
		return nil, errors.New("arith: short decode")
	}
	return out, nil
}
