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
	"testing"

	"github.com/embedded-codecs/microcodec/lib/bitstream"
)

func positiveValuesToTest() []uint32 {
	var vals []uint32
	for v := uint32(1); v <= 1024; v++ {
		vals = append(vals, v)
	}
	for v := uint64(1024); v <= uint64(1)<<28; v *= 2 {
		vals = append(vals, uint32(v), uint32(v+1))
	}
	return vals
}

func TestEliasGammaRoundTrip(t *testing.T) {
	for _, v := range positiveValuesToTest() {
		s := bitstream.New()
		if err := WriteEliasGamma(s, v); err != nil {
			t.Fatalf("v=%d: %v", v, err)
		}
		s.SetPos(0)
		got, err := ReadEliasGamma(s)
		if err != nil {
			t.Fatalf("v=%d: %v", v, err)
		}
		if got != v {
			t.Fatalf("v=%d: got %d", v, got)
		}
	}
}

func TestEliasGammaRejectsZero(t *testing.T) {
	s := bitstream.New()
	if err := WriteEliasGamma(s, 0); err == nil {
		t.Fatal("expected error for v=0")
	}
}

func TestEliasDeltaRoundTrip(t *testing.T) {
	for _, v := range positiveValuesToTest() {
		s := bitstream.New()
		if err := WriteEliasDelta(s, v); err != nil {
			t.Fatalf("v=%d: %v", v, err)
		}
		s.SetPos(0)
		got, err := ReadEliasDelta(s)
		if err != nil {
			t.Fatalf("v=%d: %v", v, err)
		}
		if got != v {
			t.Fatalf("v=%d: got %d", v, got)
		}
	}
}

func TestEliasOmegaRoundTrip(t *testing.T) {
	for _, v := range positiveValuesToTest() {
		s := bitstream.New()
		if err := WriteEliasOmega(s, v); err != nil {
			t.Fatalf("v=%d: %v", v, err)
		}
		s.SetPos(0)
		got, err := ReadEliasOmega(s)
		if err != nil {
			t.Fatalf("v=%d: %v", v, err)
		}
		if got != v {
			t.Fatalf("v=%d: got %d", v, got)
		}
	}
}

func TestEliasOmegaKnownEncoding(t *testing.T) {
	// v=9: stack pushes 9 (bitlen 4), then n=3 (bitlen-1), pushes 3 (bitlen 2),
	// then n=1, stop. Reversed emission: 3 in 2 bits "11", 9 in 4 bits "1001",
	// then terminating 0: "11" + "1001" + "0" == "1110010".
	s := bitstream.New()
	if err := WriteEliasOmega(s, 9); err != nil {
		t.Fatal(err)
	}
	got := s.ToBytes()
	want := []byte{0b11100100}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("got %08b, want %08b", got[0], want[0])
	}
	s.SetPos(0)
	v, err := ReadEliasOmega(s)
	if err != nil {
		t.Fatal(err)
	}
	if v != 9 {
		t.Fatalf("got %d, want 9", v)
	}
}

func TestEvenRodehRoundTrip(t *testing.T) {
	vals := append([]uint32{0}, positiveValuesToTest()...)
	for _, v := range vals {
		s := bitstream.New()
		if err := WriteEvenRodeh(s, v); err != nil {
			t.Fatalf("v=%d: %v", v, err)
		}
		s.SetPos(0)
		got, err := ReadEvenRodeh(s)
		if err != nil {
			t.Fatalf("v=%d: %v", v, err)
		}
		if got != v {
			t.Fatalf("v=%d: got %d", v, got)
		}
	}
}
