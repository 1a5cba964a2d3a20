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
	"bytes"
	"math/rand"
	"testing"

	"github.com/embedded-codecs/microcodec/lib/bitstream"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x41},
		bytes.Repeat([]byte{0}, 100),
		[]byte("abcabcabcabcabcabcabcabcabcabc"),
		[]byte("the quick brown fox jumps over the lazy dog"),
	}
	for _, c := range cases {
		compressed, err := Compress(c)
		if err != nil {
			t.Fatalf("input=%q: %v", c, err)
		}
		got, err := Decompress(compressed, uint32(len(c)))
		if err != nil {
			t.Fatalf("input=%q: %v", c, err)
		}
		if !bytes.Equal(got, c) {
			t.Fatalf("input=%q: got %q", c, got)
		}
	}
}

func TestCompressDecompressRandomBytes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		n := rng.Intn(2000)
		buf := make([]byte, n)
		rng.Read(buf)
		compressed, err := Compress(buf)
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		got, err := Decompress(compressed, uint32(n))
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		if !bytes.Equal(got, buf) {
			t.Fatalf("trial %d: mismatch", trial)
		}
	}
}

func TestIncrementalDecodeMatchesOneShot(t *testing.T) {
	input := []byte("mississippi river mississippi river")
	compressed, err := Compress(input)
	if err != nil {
		t.Fatal(err)
	}
	s := bitstream.FromBytes(compressed)
	d, count, err := NewDecoder(s)
	if err != nil {
		t.Fatal(err)
	}
	if count != uint32(len(input)) {
		t.Fatalf("got count %d, want %d", count, len(input))
	}
	var got []byte
	for {
		sym, ok := d.Symbol()
		if !ok {
			break
		}
		got = append(got, byte(sym))
	}
	if !bytes.Equal(got, input) {
		t.Fatalf("incremental decode mismatch: got %q, want %q", got, input)
	}
}

func TestCanonicalDeterminism(t *testing.T) {
	input := []byte("the quick brown fox jumps over the lazy dog the quick brown fox")
	a, err := Compress(input)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compress(input)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("two independent encodes differ")
	}
}

func TestSingleDistinctSymbol(t *testing.T) {
	input := bytes.Repeat([]byte{0x7F}, 50)
	compressed, err := Compress(input)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decompress(compressed, uint32(len(input)))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, input) {
		t.Fatalf("got %q, want %q", got, input)
	}
}

func TestEmptyInput(t *testing.T) {
	compressed, err := Compress(nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decompress(compressed, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}

func TestDecompressCapacityExceeded(t *testing.T) {
	input := []byte("abcabcabc")
	compressed, err := Compress(input)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decompress(compressed, uint32(len(input)-1)); err == nil {
		t.Fatal("expected capacity error")
	}
}
