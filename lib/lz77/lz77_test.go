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

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
)

func sampleInputs() [][]byte {
	return [][]byte{
		{},
		{0x41},
		bytes.Repeat([]byte{0}, 100),
		[]byte(strings.Repeat("abc", 30)),
		[]byte("the quick brown fox jumps over the lazy dog, the quick brown fox"),
	}
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	for _, in := range sampleInputs() {
		compressed, err := Compress(in)
		if err != nil {
			t.Fatalf("input=%q: Compress: %v", in, err)
		}
		out, err := Decompress(compressed, uint32(len(in)))
		if err != nil {
			t.Fatalf("input=%q: Decompress: %v", in, err)
		}
		if !bytes.Equal(out, in) {
			t.Fatalf("input=%q: got %q", in, out)
		}
	}
}

func TestCompressDecompressRandomBytes(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 10; trial++ {
		in := make([]byte, rng.Intn(400))
		rng.Read(in)
		compressed, err := Compress(in)
		if err != nil {
			t.Fatalf("trial %d: Compress: %v", trial, err)
		}
		out, err := Decompress(compressed, uint32(len(in)))
		if err != nil {
			t.Fatalf("trial %d: Decompress: %v", trial, err)
		}
		if !bytes.Equal(out, in) {
			t.Fatalf("trial %d: mismatch", trial)
		}
	}
}

func TestZeroRunCompressesSmall(t *testing.T) {
	in := bytes.Repeat([]byte{0}, 100)
	compressed, err := Compress(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(compressed) >= 20 {
		t.Fatalf("compressed length = %d, want < 20", len(compressed))
	}
}

func TestMatchInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	in := make([]byte, 2000)
	for i := range in {
		in[i] = byte(rng.Intn(4)) // heavy repetition to exercise long matches
	}
	r := Match(in, DefaultConfig)
	for i, l := range r.Lengths {
		if l < DefaultConfig.MinimumLength || l > DefaultConfig.MaximumLength {
			t.Fatalf("length[%d] = %d out of bounds", i, l)
		}
		if r.Distances[i] >= DefaultConfig.MaximumDistance {
			t.Fatalf("distance[%d] = %d out of bounds", i, r.Distances[i])
		}
	}
}

func TestIncrementalBlockMatchesOneShot(t *testing.T) {
	in := []byte(strings.Repeat("mississippi river ", 20))
	s, err := Encode(in, DefaultConfig)
	if err != nil {
		t.Fatal(err)
	}
	compressed := s.ToBytes()

	actualMaxDistance, actualMaxLength, err := peekBounds(compressed)
	if err != nil {
		t.Fatal(err)
	}
	bufLen := actualMaxDistance + 1
	if actualMaxLength+1 > bufLen {
		bufLen = actualMaxLength + 1
	}
	buf := make([]byte, bufLen)

	s2 := s
	s2.SetPos(0)
	d, count, err := NewDecoder(s2, buf)
	if err != nil {
		t.Fatal(err)
	}
	if count != uint32(len(in)) {
		t.Fatalf("count = %d, want %d", count, len(in))
	}

	var got []byte
	tmp := make([]byte, actualMaxLength+1)
	for {
		n, ok := d.Block(tmp)
		if !ok {
			break
		}
		got = append(got, tmp[:n]...)
	}
	if !bytes.Equal(got, in) {
		t.Fatalf("incremental decode mismatch: got %q, want %q", got, in)
	}
}

func TestEmptyInput(t *testing.T) {
	compressed, err := Compress(nil)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Decompress(compressed, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("got %v, want empty", out)
	}
}

func TestDecompressCapacityExceeded(t *testing.T) {
	in := []byte("abcdefgh")
	compressed, err := Compress(in)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decompress(compressed, uint32(len(in)-1)); err != ErrCapacityExceeded {
		t.Fatalf("got %v, want ErrCapacityExceeded", err)
	}
}
