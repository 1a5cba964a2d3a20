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

import "math/bits"

// bitLen32 returns the number of bits needed to hold v in natural binary
// (the position of the highest set bit, plus one), or 0 for v == 0. This is
// the bᵢ of BASC and the "bit-length" referenced throughout this package.
func bitLen32(v uint32) uint8 {
	return uint8(bits.Len32(v))
}
