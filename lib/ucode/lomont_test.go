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

// lomontParams lists the (chunkSize, deltaChunk) pairs used across the
// codec headers.
var lomontParams = []struct {
	chunkSize  uint8
	deltaChunk int8
}{
	{3, 0}, {6, 0}, {2, 0}, {4, -1}, {5, 0}, {10, 0}, {14, -7}, {25, -10}, {8, -1},
}

func valuesToTest() []uint32 {
	var vals []uint32
	for v := uint32(0); v <= 1024; v++ {
		vals = append(vals, v)
	}
	for v := uint64(1024); v <= uint64(1)<<28; v *= 2 {
		vals = append(vals, uint32(v), uint32(v+1), uint32(v-1))
	}
	vals = append(vals, 0xFFFFFFFF, 0x7FFFFFFF)
	return vals
}

func TestLomont1RoundTrip(t *testing.T) {
	for _, p := range lomontParams {
		for _, v := range valuesToTest() {
			s := bitstream.New()
			if err := WriteLomont1(s, v, p.chunkSize, p.deltaChunk); err != nil {
				t.Fatalf("chunkSize=%d deltaChunk=%d v=%d: write error: %v", p.chunkSize, p.deltaChunk, v, err)
			}
			s.SetPos(0)
			got, err := ReadLomont1(s, p.chunkSize, p.deltaChunk)
			if err != nil {
				t.Fatalf("chunkSize=%d deltaChunk=%d v=%d: read error: %v", p.chunkSize, p.deltaChunk, v, err)
			}
			if got != v {
				t.Fatalf("chunkSize=%d deltaChunk=%d v=%d: got %d", p.chunkSize, p.deltaChunk, v, got)
			}
		}
	}
}

func TestLomont1ReadFromDoesNotMoveCursor(t *testing.T) {
	s := bitstream.New()
	_ = WriteLomont1(s, 42, 6, 0)
	startPos := s.Len()
	_ = WriteLomont1(s, 99, 6, 0)
	s.SetPos(0)
	pos := uint32(0)
	v, err := ReadLomont1From(s, &pos, 6, 0)
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Fatalf("got %d, want 42", v)
	}
	if s.Pos() != 0 {
		t.Fatalf("ReadFrom moved s's own cursor: %d", s.Pos())
	}
	if pos != startPos {
		t.Fatalf("pos advanced to %d, want %d", pos, startPos)
	}
}

func TestLomont1BadChunkSize(t *testing.T) {
	s := bitstream.New()
	if err := WriteLomont1(s, 1, 0, 0); err == nil {
		t.Fatal("expected error for chunk size 0")
	}
}
