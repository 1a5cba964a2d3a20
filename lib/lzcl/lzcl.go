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

// Package lzcl implements the composite LZ77 variant: the same
// decisions/literals/tokens model as lib/lz77, but each sub-stream is
// independently encoded with whichever of {Fixed, Arithmetic, Huffman,
// Golomb} yields the fewest bits, and packaged behind a small
// self-describing shell.
package lzcl

import (
	"errors"

	"github.com/embedded-codecs/microcodec/lib/bitstream"
	"github.com/embedded-codecs/microcodec/lib/lz77"
	"github.com/embedded-codecs/microcodec/lib/subcodec"
	"github.com/embedded-codecs/microcodec/lib/ucode"
)

// EndToken is the end-of-stream sentinel shared with the other codecs'
// incremental decoders. This package has no incremental decoder: Decompress
// is one-shot and never returns it.
const EndToken uint32 = 0xFFFFFFFF

var (
	// ErrCorruptHeader is returned for an internally inconsistent header.
	ErrCorruptHeader = errors.New("lzcl: corrupt header")
	// ErrCapacityExceeded is returned when a decode exceeds destCapacity.
	ErrCapacityExceeded = errors.New("lzcl: output exceeds destination capacity")
	// ErrInvalidSubCodecTag is returned for a sub-codec tag outside {0,1,2,3}.
	ErrInvalidSubCodecTag = subcodec.ErrInvalidTag
)

const (
	byteLengthChunk, byteLengthDelta = 6, 0
	maxDistChunk, maxDistDelta       = 10, 0
	minLengthChunk, minLengthDelta   = 2, 0
)

// decisionRuns returns the run-lengths of alternating 0/1 values in
// decisions (no zero-length runs) and the value of the first run.
func decisionRuns(decisions []uint8) ([]uint32, uint8) {
	if len(decisions) == 0 {
		return nil, 0
	}
	initial := decisions[0]
	cur := decisions[0]
	var run uint32
	var runs []uint32
	for _, d := range decisions {
		if d == cur {
			run++
			continue
		}
		runs = append(runs, run)
		cur = d
		run = 1
	}
	runs = append(runs, run)
	return runs, initial
}

// expandRuns reverses decisionRuns given the same initial value. The
// decision count is the sum of the runs themselves, not the output byte
// count (one decision can stand for a multi-byte match).
func expandRuns(runs []uint32, initial uint8) []uint8 {
	var total uint32
	for _, run := range runs {
		total += run
	}
	out := make([]uint8, 0, total)
	cur := initial
	for _, run := range runs {
		for i := uint32(0); i < run; i++ {
			out = append(out, cur)
		}
		cur ^= 1
	}
	return out
}

// Encode runs the LZ77 matcher over data, then independently best-encodes
// each of {decisions or decisionRuns, literals, tokens or distances+lengths}.
func Encode(data []byte, cfg lz77.Config) (*bitstream.BitStream, error) {
	s := bitstream.New()
	if err := ucode.WriteLomont1(s, uint32(len(data)), byteLengthChunk, byteLengthDelta); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return s, nil
	}

	r := lz77.Match(data, cfg)

	var actualMinLength uint32 = 0xFFFFFFFF
	var actualMaxDistance uint32
	for _, l := range r.Lengths {
		if l < actualMinLength {
			actualMinLength = l
		}
	}
	if actualMinLength == 0xFFFFFFFF {
		actualMinLength = cfg.MinimumLength
	}
	for _, d := range r.Distances {
		if d > actualMaxDistance {
			actualMaxDistance = d
		}
	}

	tokens := make([]uint32, len(r.Distances))
	lengths := make([]uint32, len(r.Lengths))
	for i := range r.Distances {
		shiftedLength := r.Lengths[i] - actualMinLength
		lengths[i] = shiftedLength
		tokens[i] = shiftedLength*(actualMaxDistance+1) + r.Distances[i]
	}

	if err := ucode.WriteLomont1(s, actualMaxDistance, maxDistChunk, maxDistDelta); err != nil {
		return nil, err
	}
	if err := ucode.WriteLomont1(s, actualMinLength, minLengthChunk, minLengthDelta); err != nil {
		return nil, err
	}

	decisions32 := make([]uint32, len(r.Decisions))
	for i, d := range r.Decisions {
		decisions32[i] = uint32(d)
	}
	runs, initial := decisionRuns(r.Decisions)
	runsTag, runsPayload, err := subcodec.SelectBest(runs, nil)
	if err != nil {
		return nil, err
	}
	decisionsTag, decisionsPayload, err := subcodec.SelectBest(decisions32, nil)
	if err != nil {
		return nil, err
	}
	useDecisionRuns := runs != nil && runsPayload.Len()+1 < decisionsPayload.Len()
	if useDecisionRuns {
		s.Write(1, 1)
		s.Write(uint32(initial), 1)
		if err := subcodec.WriteFrame(s, runsTag, runsPayload); err != nil {
			return nil, err
		}
	} else {
		s.Write(0, 1)
		if err := subcodec.WriteFrame(s, decisionsTag, decisionsPayload); err != nil {
			return nil, err
		}
	}

	literalsTag, literalsPayload, err := subcodec.SelectBest(r.Literals, nil)
	if err != nil {
		return nil, err
	}
	if err := subcodec.WriteFrame(s, literalsTag, literalsPayload); err != nil {
		return nil, err
	}

	tokensTag, tokensPayload, err := subcodec.SelectBest(tokens, nil)
	if err != nil {
		return nil, err
	}
	distancesTag, distancesPayload, err := subcodec.SelectBest(r.Distances, nil)
	if err != nil {
		return nil, err
	}
	lengthsTag, lengthsPayload, err := subcodec.SelectBest(lengths, nil)
	if err != nil {
		return nil, err
	}
	useTokens := tokensPayload.Len() < distancesPayload.Len()+lengthsPayload.Len()
	if useTokens {
		s.Write(0, 1)
		if err := subcodec.WriteFrame(s, tokensTag, tokensPayload); err != nil {
			return nil, err
		}
	} else {
		s.Write(1, 1)
		if err := subcodec.WriteFrame(s, distancesTag, distancesPayload); err != nil {
			return nil, err
		}
		if err := subcodec.WriteFrame(s, lengthsTag, lengthsPayload); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Compress LZCL-encodes input using lz77.DefaultConfig.
func Compress(input []byte) ([]byte, error) {
	s, err := Encode(input, lz77.DefaultConfig)
	if err != nil {
		return nil, err
	}
	return s.ToBytes(), nil
}

// Decompress reverses Compress. It decodes each sub-stream eagerly into a
// slice (lib/subcodec's shared Decode is one-shot across all four
// candidates), then drives the decisions/literals/tokens state machine to
// reconstruct the original bytes, cyclically copying back-references as
// lz77 does.
func Decompress(input []byte, destCapacity uint32) ([]byte, error) {
	s := bitstream.FromBytes(input)
	byteLength, err := ucode.ReadLomont1(s, byteLengthChunk, byteLengthDelta)
	if err != nil {
		return nil, err
	}
	if byteLength > destCapacity {
		return nil, ErrCapacityExceeded
	}
	if byteLength == 0 {
		return []byte{}, nil
	}

	actualMaxDistance, err := ucode.ReadLomont1(s, maxDistChunk, maxDistDelta)
	if err != nil {
		return nil, err
	}
	actualMinLength, err := ucode.ReadLomont1(s, minLengthChunk, minLengthDelta)
	if err != nil {
		return nil, err
	}

	useDecisionRunsBit, err := s.Read(1)
	if err != nil {
		return nil, err
	}
	var decisions []uint8
	if useDecisionRunsBit == 1 {
		initialBit, err := s.Read(1)
		if err != nil {
			return nil, err
		}
		_, runsVals, err := subcodec.ReadFrame(s)
		if err != nil {
			return nil, err
		}
		decisions = expandRuns(runsVals, uint8(initialBit))
	} else {
		_, decisionVals, err := subcodec.ReadFrame(s)
		if err != nil {
			return nil, err
		}
		decisions = make([]uint8, len(decisionVals))
		for i, v := range decisionVals {
			decisions[i] = uint8(v)
		}
	}

	_, literalVals, err := subcodec.ReadFrame(s)
	if err != nil {
		return nil, err
	}

	useTokensBit, err := s.Read(1)
	if err != nil {
		return nil, err
	}
	var distances, lengths []uint32
	if useTokensBit == 0 {
		_, tokenVals, err := subcodec.ReadFrame(s)
		if err != nil {
			return nil, err
		}
		distances = make([]uint32, len(tokenVals))
		lengths = make([]uint32, len(tokenVals))
		for i, tok := range tokenVals {
			distances[i] = tok % (actualMaxDistance + 1)
			lengths[i] = tok/(actualMaxDistance+1) + actualMinLength
		}
	} else {
		_, distanceVals, err := subcodec.ReadFrame(s)
		if err != nil {
			return nil, err
		}
		_, lengthVals, err := subcodec.ReadFrame(s)
		if err != nil {
			return nil, err
		}
		distances = distanceVals
		lengths = make([]uint32, len(lengthVals))
		for i, l := range lengthVals {
			lengths[i] = l + actualMinLength
		}
	}

	bufLen := actualMaxDistance + 1
	var maxLength uint32
	for _, l := range lengths {
		if l > maxLength {
			maxLength = l
		}
	}
	if maxLength+1 > bufLen {
		bufLen = maxLength + 1
	}
	buf := make([]byte, bufLen)

	out := make([]byte, 0, byteLength)
	var writeIndex uint32
	litIdx, runIdx := 0, 0
	for _, dec := range decisions {
		if uint32(len(out)) >= byteLength {
			break
		}
		if dec == 0 {
			b := byte(literalVals[litIdx])
			litIdx++
			buf[writeIndex%bufLen] = b
			out = append(out, b)
			writeIndex++
		} else {
			distance := distances[runIdx]
			length := lengths[runIdx]
			runIdx++
			for i := uint32(0); i < length; i++ {
				srcIdx := (writeIndex + bufLen - distance - 1) % bufLen
				b := buf[srcIdx]
				buf[writeIndex%bufLen] = b
				out = append(out, b)
				writeIndex++
			}
		}
	}
	if uint32(len(out)) != byteLength {
		return nil, errors.New("lzcl: short decode")
	}
	return out, nil
}
