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

func TestGolombRoundTrip(t *testing.T) {
	for _, m := range []uint32{1, 2, 3, 4, 5, 7, 10, 16, 100} {
		for v := uint32(0); v <= 512; v++ {
			s := bitstream.New()
			if err := WriteGolomb(s, v, m); err != nil {
				t.Fatalf("m=%d v=%d: %v", m, v, err)
			}
			s.SetPos(0)
			got, err := ReadGolomb(s, m)
			if err != nil {
				t.Fatalf("m=%d v=%d: %v", m, v, err)
			}
			if got != v {
				t.Fatalf("m=%d v=%d: got %d", m, v, got)
			}
		}
	}
}

func TestGolombRejectsZeroDivisor(t *testing.T) {
	s := bitstream.New()
	if err := WriteGolomb(s, 1, 0); err == nil {
		t.Fatal("expected error for m=0")
	}
}

func TestGolombUnaryDegenerate(t *testing.T) {
	// m=1: pure unary, v ones then a terminating zero.
	s := bitstream.New()
	if err := WriteGolomb(s, 3, 1); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 4 {
		t.Fatalf("got %d bits, want 4", s.Len())
	}
}
