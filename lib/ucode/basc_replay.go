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

// errReplayExhausted is returned by BASCReplay.Next once every value has
// been produced.
var errReplayExhausted = errors.New("ucode: basc replay exhausted")

// BASCReplay walks a BASC-coded list value-by-value using non-moving reads,
// so the same in-stream table can be re-walked from the start on every
// lookup without ever materializing it into a slice. This is how the
// Arithmetic codec's frequency table is consulted on every decoded symbol.
type BASCReplay struct {
	s     *bitstream.BitStream
	pos   uint32
	count uint32
	index uint32
	prevB uint8
}

// NewBASCReplay starts a replay of the BASC list at the absolute bit
// position start, returning the list's declared length.
func NewBASCReplay(s *bitstream.BitStream, start uint32) (*BASCReplay, uint32, error) {
	pos := start
	lenPlusOne, err := ReadLomont1From(s, &pos, bascLengthChunk, bascLengthDelta)
	if err != nil {
		return nil, 0, err
	}
	if lenPlusOne == 0 {
		return nil, 0, errOverflow
	}
	return &BASCReplay{s: s, pos: pos, count: lenPlusOne - 1}, lenPlusOne - 1, nil
}

// Next returns the next value in the list.
func (r *BASCReplay) Next() (uint32, error) {
	if r.index >= r.count {
		return 0, errReplayExhausted
	}
	if r.index == 0 {
		bU, err := ReadLomont1From(r.s, &r.pos, bascLengthChunk, bascLengthDelta)
		if err != nil {
			return 0, err
		}
		b := uint8(bU)
		v, err := r.s.ReadFrom(&r.pos, b)
		if err != nil {
			return 0, err
		}
		r.prevB = b
		r.index++
		return v, nil
	}

	bit, err := r.s.ReadFrom(&r.pos, 1)
	if err != nil {
		return 0, err
	}
	var v uint32
	if bit == 0 {
		vv, err := r.s.ReadFrom(&r.pos, r.prevB)
		if err != nil {
			return 0, err
		}
		v = vv
		r.prevB = bitLen32(v)
	} else {
		diff := uint8(1)
		for {
			b2, err := r.s.ReadFrom(&r.pos, 1)
			if err != nil {
				return 0, err
			}
			if b2 == 0 {
				break
			}
			diff++
		}
		b := r.prevB + diff
		rest, err := r.s.ReadFrom(&r.pos, b-1)
		if err != nil {
			return 0, err
		}
		v = (uint32(1) << (b - 1)) | rest
		r.prevB = b
	}
	r.index++
	return v, nil
}
