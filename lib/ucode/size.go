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

import "github.com/embedded-codecs/microcodec/lib/bitstream"

// byteLengthChunk/Delta are the Lomont-1(6,0) parameters every codec in this
// module uses for its leading byteLength field.
const (
	byteLengthChunk, byteLengthDelta = 6, 0
)

// DecompressedSize returns the first Lomont-1(6,0) header field of source,
// which for Huffman, Arithmetic, LZ77, and LZCL alike is the uncompressed
// byte count of the payload, without parsing the rest of the header.
func DecompressedSize(source []byte) (uint32, error) {
	s := bitstream.FromBytes(source)
	return ReadLomont1(s, byteLengthChunk, byteLengthDelta)
}
