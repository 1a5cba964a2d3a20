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

// Package testcorpus supplies the small synthetic fixtures the codec test
// suites round-trip against, standing in for the Calgary/Canterbury corpus
// files the reference tool tests on but which are not part of this module.
package testcorpus

import "math/rand"

// Zeroes returns n zero bytes.
func Zeroes(n int) []byte {
	return make([]byte, n)
}

// Repeat returns pattern concatenated times times.
func Repeat(pattern string, times int) []byte {
	out := make([]byte, 0, len(pattern)*times)
	for i := 0; i < times; i++ {
		out = append(out, pattern...)
	}
	return out
}

// PseudoRandom returns n deterministically-random bytes for a given seed.
func PseudoRandom(n int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	out := make([]byte, n)
	rng.Read(out)
	return out
}

// TextLike returns a synthetic C-source-shaped text fixture of roughly n
// bytes: skewed character frequencies and repeated tokens, approximating
// the statistical shape of source code without reproducing any real file.
func TextLike(n int) []byte {
	const snippet = `static int decompress_block(struct state *s, uint8_t *dest) {
    if (s->remaining == 0) return END_TOKEN;
    uint32_t decision = read_bit(s);
    if (decision == 0) {
        uint8_t literal = read_bits(s, s->bits_per_symbol);
        dest[s->write_index % s->dest_length] = literal;
        s->write_index++;
        return 1;
    }
    uint32_t token = read_bits(s, s->bits_per_token);
    uint32_t distance = token % (s->max_distance + 1);
    uint32_t length = token / (s->max_distance + 1) + s->min_length;
    return copy_run(s, dest, distance, length);
}
`
	out := make([]byte, 0, n+len(snippet))
	for len(out) < n {
		out = append(out, snippet...)
	}
	return out[:n]
}
