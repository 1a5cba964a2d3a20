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

// Package subcodec implements LZCL's per-substream codec dispatcher: a
// 2-bit tag selects which of {Fixed, Arithmetic, Huffman, Golomb} encodes
// one sub-stream of integers, and SelectBest tries every enabled candidate
// and keeps the shortest.
package subcodec

import (
	"errors"

	"github.com/embedded-codecs/microcodec/lib/arith"
	"github.com/embedded-codecs/microcodec/lib/bitstream"
	"github.com/embedded-codecs/microcodec/lib/fixedcodec"
	"github.com/embedded-codecs/microcodec/lib/huffman"
)

// Tag identifies which codec encoded a sub-stream.
type Tag uint8

const (
	TagFixed Tag = iota
	TagArithmetic
	TagHuffman
	TagGolomb
)

// ErrInvalidTag is returned for a tag value outside {0,1,2,3}.
var ErrInvalidTag = errors.New("subcodec: invalid sub-codec tag")

// TagBits is the width of the tag field in a sub-codec frame.
const TagBits = 2

// Candidate is one codec this package knows how to try.
type Candidate struct {
	Tag    Tag
	Encode func(values []uint32) (*bitstream.BitStream, error)
	Decode func(s *bitstream.BitStream) ([]uint32, error)
}

// AllCandidates lists every codec SelectBest may choose among, in tag order.
// Golomb's candidate searches its own divisor before encoding.
var AllCandidates = []Candidate{
	{Tag: TagFixed, Encode: fixedcodec.Encode, Decode: fixedcodec.Decode},
	{Tag: TagArithmetic, Encode: arith.Encode, Decode: arith.Decode},
	{Tag: TagHuffman, Encode: huffman.Encode, Decode: huffman.Decode},
	{Tag: TagGolomb, Encode: EncodeGolomb, Decode: DecodeGolomb},
}

// SelectBest tries each candidate in enabled (nil means AllCandidates) and
// returns the tag and payload of whichever produces the fewest bits.
func SelectBest(values []uint32, enabled []Candidate) (Tag, *bitstream.BitStream, error) {
	if enabled == nil {
		enabled = AllCandidates
	}
	var bestTag Tag
	var best *bitstream.BitStream
	found := false
	for _, c := range enabled {
		s, err := c.Encode(values)
		if err != nil {
			continue
		}
		if !found || s.Len() < best.Len() {
			best = s
			bestTag = c.Tag
			found = true
		}
	}
	if !found {
		return 0, nil, errors.New("subcodec: no candidate could encode this sub-stream")
	}
	return bestTag, best, nil
}

// DecodeTag dispatches to the candidate matching tag.
func DecodeTag(tag Tag, s *bitstream.BitStream) ([]uint32, error) {
	for _, c := range AllCandidates {
		if c.Tag == tag {
			return c.Decode(s)
		}
	}
	return nil, ErrInvalidTag
}

// WriteFrame packages payload behind tag and a Lomont-1(6,0) bit-length, the
// self-describing shell LZCL uses so a reader can skip a sub-codec frame
// without parsing its interior.
func WriteFrame(s *bitstream.BitStream, tag Tag, payload *bitstream.BitStream) error {
	s.Write(uint32(tag), TagBits)
	if err := writeFrameLength(s, payload.Len()); err != nil {
		return err
	}
	return s.Append(payload)
}

// ReadFrame reads a sub-codec frame's tag and decodes its payload, leaving
// s's cursor immediately after the frame regardless of how much of the
// payload the tag's Decode actually consumed.
func ReadFrame(s *bitstream.BitStream) (Tag, []uint32, error) {
	tagV, err := s.Read(TagBits)
	if err != nil {
		return 0, nil, err
	}
	tag := Tag(tagV)
	if tag > TagGolomb {
		return 0, nil, ErrInvalidTag
	}
	length, err := readFrameLength(s)
	if err != nil {
		return 0, nil, err
	}
	frameStart := s.Pos()
	values, err := DecodeTag(tag, s)
	if err != nil {
		return 0, nil, err
	}
	s.SetPos(frameStart + length)
	return tag, values, nil
}
