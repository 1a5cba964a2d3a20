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

package subcodec

import (
	"reflect"
	"testing"

	"github.com/embedded-codecs/microcodec/lib/bitstream"
)

func TestSelectBestRoundTripsThroughFrame(t *testing.T) {
	cases := [][]uint32{
		{},
		{5, 5, 5, 5, 5, 5, 5, 5},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		{100, 1, 100, 1, 100, 1, 100, 2, 100, 3},
		{0, 0, 0, 1000, 2000, 0, 0, 0},
	}
	for _, c := range cases {
		tag, payload, err := SelectBest(c, nil)
		if err != nil {
			t.Fatalf("values=%v: SelectBest: %v", c, err)
		}
		s := bitstream.New()
		if err := WriteFrame(s, tag, payload); err != nil {
			t.Fatalf("values=%v: WriteFrame: %v", c, err)
		}
		s.SetPos(0)
		gotTag, got, err := ReadFrame(s)
		if err != nil {
			t.Fatalf("values=%v: ReadFrame: %v", c, err)
		}
		if gotTag != tag {
			t.Fatalf("values=%v: tag = %d, want %d", c, gotTag, tag)
		}
		if len(c) == 0 {
			if len(got) != 0 {
				t.Fatalf("values=%v: got %v", c, got)
			}
			continue
		}
		if !reflect.DeepEqual(got, c) {
			t.Fatalf("values=%v: got %v", c, got)
		}
	}
}

func TestGolombRoundTrip(t *testing.T) {
	values := []uint32{10, 20, 30, 5, 15, 25, 5, 5, 40}
	s, err := EncodeGolomb(values)
	if err != nil {
		t.Fatal(err)
	}
	s.SetPos(0)
	got, err := DecodeGolomb(s)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, values) {
		t.Fatalf("got %v, want %v", got, values)
	}
}

