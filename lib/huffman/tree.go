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

// Package huffman implements canonical Huffman coding with a table layout
// designed for constant-memory, in-stream decoding: the decoder never
// materializes a code table, it re-reads the compressed header on every
// symbol.
package huffman

import "math/bits"

// node is one entry in the Huffman construction arena. Leaves carry a
// symbol; internal nodes carry two child indices. The arena (and the tree
// it represents) is discarded once codeword lengths have been read off of
// it; only the final (symbol, length) pairs survive into the header.
type node struct {
	freq     uint64
	symbol   uint32
	isLeaf   bool
	left     int
	right    int
}

// buildLengths runs the encoder's tree construction (repeatedly coalescing
// the two minimum-frequency roots, first minimum in insertion order on
// ties) and returns each symbol's resulting codeword bit length. order lists
// distinct symbols in first-occurrence order, the source of the tie-break.
func buildLengths(order []uint32, counts map[uint32]uint64) map[uint32]uint8 {
	lengths := make(map[uint32]uint8, len(order))
	if len(order) == 0 {
		return lengths
	}
	if len(order) == 1 {
		lengths[order[0]] = 1
		return lengths
	}

	nodes := make([]node, 0, 2*len(order))
	active := make([]int, 0, len(order))
	for _, sym := range order {
		nodes = append(nodes, node{freq: counts[sym], symbol: sym, isLeaf: true, left: -1, right: -1})
		active = append(active, len(nodes)-1)
	}

	for len(active) > 1 {
		i1 := argminFreq(active, nodes)
		n1 := active[i1]
		active = append(active[:i1], active[i1+1:]...)

		i2 := argminFreq(active, nodes)
		n2 := active[i2]
		active = append(active[:i2], active[i2+1:]...)

		nodes = append(nodes, node{freq: nodes[n1].freq + nodes[n2].freq, left: n1, right: n2})
		active = append(active, len(nodes)-1)
	}

	assignDepths(nodes, active[0], 0, lengths)
	return lengths
}

// argminFreq returns the index within active of the first node (in active's
// own order) holding the minimum frequency.
func argminFreq(active []int, nodes []node) int {
	best := 0
	bestFreq := nodes[active[0]].freq
	for i := 1; i < len(active); i++ {
		if nodes[active[i]].freq < bestFreq {
			best = i
			bestFreq = nodes[active[i]].freq
		}
	}
	return best
}

func assignDepths(nodes []node, idx int, depth uint8, lengths map[uint32]uint8) {
	n := nodes[idx]
	if n.isLeaf {
		lengths[n.symbol] = depth
		return
	}
	assignDepths(nodes, n.left, depth+1, lengths)
	assignDepths(nodes, n.right, depth+1, lengths)
}

// leaf is a sorted (symbol, length) pair ready for canonical codeword
// assignment.
type leaf struct {
	symbol uint32
	length uint8
}

// canonicalize sorts leaves by (length ascending, symbol ascending) and
// assigns canonical codewords: the minLen-bit value 0 for the first leaf,
// then the running codeword is left-shifted up to each leaf's length and
// incremented after every assignment.
func canonicalize(lengths map[uint32]uint8) ([]leaf, map[uint32]Codeword) {
	leaves := make([]leaf, 0, len(lengths))
	for sym, l := range lengths {
		leaves = append(leaves, leaf{symbol: sym, length: l})
	}
	sortLeaves(leaves)

	codewords := make(map[uint32]Codeword, len(leaves))
	if len(leaves) == 0 {
		return leaves, codewords
	}
	code := uint32(0)
	curLen := leaves[0].length
	for _, lf := range leaves {
		if lf.length > curLen {
			code <<= (lf.length - curLen)
			curLen = lf.length
		}
		codewords[lf.symbol] = Codeword{Value: code, Length: lf.length}
		code++
	}
	return leaves, codewords
}

func sortLeaves(leaves []leaf) {
	// Insertion sort: alphabets are small (at most a few hundred distinct
	// symbols in any of this codec's use cases) so an O(n^2) sort costs
	// nothing and needs no extra import.
	for i := 1; i < len(leaves); i++ {
		for j := i; j > 0 && less(leaves[j], leaves[j-1]); j-- {
			leaves[j], leaves[j-1] = leaves[j-1], leaves[j]
		}
	}
}

func less(a, b leaf) bool {
	if a.length != b.length {
		return a.length < b.length
	}
	return a.symbol < b.symbol
}

// bitLen32 returns the number of bits needed to hold v, or 1 for v == 0 (a
// header field must still reserve at least one bit).
func bitLen32(v uint32) uint8 {
	if n := uint8(bits.Len32(v)); n > 0 {
		return n
	}
	return 1
}
