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

package bitstream

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestWriteReadRoundTrip(tt *testing.T) {
	s := New()
	values := []struct {
		v uint32
		n uint8
	}{
		{0x1, 1},
		{0x0, 1},
		{0x5, 3},
		{0xFF, 8},
		{0x12345678, 32},
		{0, 5},
		{0x3FF, 10},
	}
	for _, vn := range values {
		s.Write(vn.v, vn.n)
	}
	s.SetPos(0)
	for _, vn := range values {
		got, err := s.Read(vn.n)
		if err != nil {
			tt.Fatalf("Read(%d): %v", vn.n, err)
		}
		if got != vn.v {
			tt.Fatalf("Read(%d) = %#x, want %#x", vn.n, got, vn.v)
		}
	}
}

func TestReadFromDoesNotMoveCursor(tt *testing.T) {
	s := New()
	s.Write(0xAB, 8)
	s.Write(0xCD, 8)

	var p uint32 = 0
	v, err := s.ReadFrom(&p, 8)
	if err != nil {
		tt.Fatalf("ReadFrom: %v", err)
	}
	if v != 0xAB {
		tt.Fatalf("ReadFrom = %#x, want 0xAB", v)
	}
	if p != 8 {
		tt.Fatalf("p advanced to %d, want 8", p)
	}
	if s.Pos() != 0 {
		tt.Fatalf("s.Pos() = %d, want 0 (ReadFrom must not move it)", s.Pos())
	}
}

func TestReadTruncated(tt *testing.T) {
	s := New()
	s.Write(0x3, 2)
	if _, err := s.Read(8); err != ErrTruncated {
		tt.Fatalf("Read past end: got err %v, want ErrTruncated", err)
	}
	if s.Pos() != 0 {
		tt.Fatalf("Pos moved on failed read: %d", s.Pos())
	}
}

func TestToBytesFromBytesSelfInverse(tt *testing.T) {
	s := New()
	for i := 0; i < 37; i++ {
		s.Write(uint32(i&1), 1)
	}
	// Pad to a byte multiple so ToBytes/FromBytes round-trip exactly.
	for s.Len()%8 != 0 {
		s.Write(0, 1)
	}
	want := s.ReadAll()
	rt := FromBytes(s.ToBytes())
	got := rt.ReadAll()
	if !reflect.DeepEqual(want, got) {
		tt.Fatalf("round trip mismatch: got %v, want %v", got, want)
	}
}

func TestBytePackingMSBFirst(tt *testing.T) {
	s := New()
	s.Write(0x1, 1)
	s.Write(0x0, 1)
	s.Write(0x1, 1)
	s.Write(0x1, 1)
	s.Write(0x0, 1)
	s.Write(0x1, 1)
	s.Write(0x0, 1)
	s.Write(0x1, 1)
	got := s.ToBytes()
	want := byte(0b10110101)
	if len(got) != 1 || got[0] != want {
		tt.Fatalf("ToBytes() = %08b, want %08b", got, want)
	}
}

func TestPartialLastBytePaddedLow(tt *testing.T) {
	s := New()
	s.Write(0x1, 1)
	s.Write(0x1, 1)
	s.Write(0x0, 1)
	got := s.ToBytes()
	want := byte(0b11000000)
	if len(got) != 1 || got[0] != want {
		tt.Fatalf("ToBytes() = %08b, want %08b", got, want)
	}
}

func TestInsertAt(tt *testing.T) {
	s := New()
	s.Write(0xF0, 8) // head
	s.Write(0x0F, 8) // tail

	mid := New()
	mid.Write(0xAA, 8)

	if err := s.InsertAt(8, mid); err != nil {
		tt.Fatalf("InsertAt: %v", err)
	}
	if s.Len() != 24 {
		tt.Fatalf("Len() = %d, want 24", s.Len())
	}
	s.SetPos(0)
	for _, want := range []uint32{0xF0, 0xAA, 0x0F} {
		got, err := s.Read(8)
		if err != nil {
			tt.Fatalf("Read: %v", err)
		}
		if got != want {
			tt.Fatalf("Read() = %#x, want %#x", got, want)
		}
	}
}

func TestRandomRoundTrip(tt *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := New()
	type entry struct {
		v uint32
		n uint8
	}
	var entries []entry
	for i := 0; i < 2000; i++ {
		n := uint8(1 + rng.Intn(32))
		v := rng.Uint32()
		if n < 32 {
			v &= (uint32(1) << n) - 1
		}
		entries = append(entries, entry{v, n})
		s.Write(v, n)
	}
	s.SetPos(0)
	for i, e := range entries {
		got, err := s.Read(e.n)
		if err != nil {
			tt.Fatalf("entry %d: Read: %v", i, err)
		}
		if got != e.v {
			tt.Fatalf("entry %d: Read() = %#x, want %#x", i, got, e.v)
		}
	}
}

func TestAppend(tt *testing.T) {
	a := New()
	a.Write(0b101, 3)
	b := New()
	b.Write(0b11, 2)
	if err := a.Append(b); err != nil {
		tt.Fatal(err)
	}
	if a.Len() != 5 {
		tt.Fatalf("got length %d, want 5", a.Len())
	}
	a.SetPos(0)
	got, err := a.Read(5)
	if err != nil {
		tt.Fatal(err)
	}
	if got != 0b10111 {
		tt.Fatalf("got %05b, want 10111", got)
	}
}
