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

package lz77

// Config holds the greedy matcher's tunable parameters. The zero value is
// not usable; callers should start from DefaultConfig.
type Config struct {
	// MinimumLength is the shortest match worth emitting as a back
	// reference rather than a literal.
	MinimumLength uint32
	// MaximumDistance is the farthest back a match may reach.
	MaximumDistance uint32
	// MaximumLength caps how far a single match may extend.
	MaximumLength uint32
}

// DefaultConfig mirrors the reference tool's defaults: a 4KiB window and
// matches from 3 to 256 bytes.
var DefaultConfig = Config{
	MinimumLength:   3,
	MaximumDistance: 4095,
	MaximumLength:   256,
}

// MatchResult is the encoder's parallel-lists view of the match search:
// decisions[i]==0 means the next output byte came from literals, ==1 means
// it came from the next (distance,length) pair. Exported so lib/lzcl can
// reuse the same matcher over its own, independently-encoded sub-streams.
type MatchResult struct {
	Decisions []uint8
	Literals  []uint32
	Distances []uint32
	Lengths   []uint32
}

// Match runs the greedy LZ77 search described by cfg over data, producing
// the decisions/literals/distances/lengths parallel lists.
func Match(data []byte, cfg Config) MatchResult {
	var r MatchResult
	n := len(data)
	for i := 0; i < n; {
		bestLen := uint32(0)
		bestDist := uint32(0)
		maxD := cfg.MaximumDistance
		if uint32(i) < maxD {
			maxD = uint32(i)
		}
		for d := maxD; d >= 1; d-- {
			start := i - int(d)
			var l uint32
			maxLen := cfg.MaximumLength
			if rem := uint32(n - i); rem < maxLen {
				maxLen = rem
			}
			for l < maxLen && data[start+int(l)] == data[i+int(l)] {
				l++
			}
			if l >= bestLen {
				bestLen = l
				// d is the 1-indexed back-offset (data[i-d] is the byte just
				// before the match); the wire/decoder convention is the
				// 0-indexed distance, one less than that offset.
				bestDist = d - 1
			}
		}

		if bestLen >= cfg.MinimumLength {
			r.Decisions = append(r.Decisions, 1)
			r.Distances = append(r.Distances, bestDist)
			r.Lengths = append(r.Lengths, bestLen)
			i += int(bestLen)
		} else {
			r.Decisions = append(r.Decisions, 0)
			r.Literals = append(r.Literals, uint32(data[i]))
			i++
		}
	}
	return r
}
