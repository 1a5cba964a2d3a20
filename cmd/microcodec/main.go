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

/*
microcodec compresses and decompresses byte streams with one of four
codecs.

Usage:

microcodec -encode -codec={huffman,arith,lz77,lzcl} [input_filename]
microcodec -decode -codec={huffman,arith,lz77,lzcl} [-destlen=N] [input_filename]

If no input_filename is given, stdin is used. Either way, output is written
to stdout.

The flags should include exactly one of -decode or -encode.

Decode-Related Flags:

-destlen
    the destination buffer capacity in bytes; defaults to the size the
    compressed stream's header declares

Encode-Related Flags:

-codec
    the compression codec: huffman, arith, lz77, or lzcl (default "huffman")
*/
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/embedded-codecs/microcodec/lib/arith"
	"github.com/embedded-codecs/microcodec/lib/huffman"
	"github.com/embedded-codecs/microcodec/lib/lz77"
	"github.com/embedded-codecs/microcodec/lib/lzcl"
	"github.com/embedded-codecs/microcodec/lib/ucode"
)

var (
	decodeFlag  = flag.Bool("decode", false, "whether to decode the input")
	encodeFlag  = flag.Bool("encode", false, "whether to encode the input")
	codecFlag   = flag.String("codec", "huffman", "the compression codec: huffman, arith, lz77, or lzcl")
	destlenFlag = flag.Uint64("destlen", 0,
		"the destination buffer capacity in bytes; 0 means use the header's declared size")
)

func usage() {
	// TODO: print the doc comment above to os.Stderr.
}

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	flag.Usage = usage
	flag.Parse()

	r := io.Reader(os.Stdin)
	switch flag.NArg() {
	case 0:
		// No-op.
	case 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	default:
		return errors.New("too many filenames; the maximum is one")
	}

	input, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}

	if *decodeFlag && !*encodeFlag {
		return runDecode(input)
	}
	if *encodeFlag && !*decodeFlag {
		return runEncode(input)
	}
	return errors.New("must specify exactly one of -decode or -encode")
}

func runEncode(input []byte) error {
	var out []byte
	var err error
	switch *codecFlag {
	case "huffman":
		out, err = huffman.Compress(input)
	case "arith":
		out, err = arith.Compress(input)
	case "lz77":
		out, err = lz77.Compress(input)
	case "lzcl":
		out, err = lzcl.Compress(input)
	default:
		return fmt.Errorf("unsupported -codec %q", *codecFlag)
	}
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func runDecode(input []byte) error {
	destLen := uint32(*destlenFlag)
	if destLen == 0 {
		declared, err := ucode.DecompressedSize(input)
		if err != nil {
			return err
		}
		destLen = declared
	}

	var out []byte
	var err error
	switch *codecFlag {
	case "huffman":
		out, err = huffman.Decompress(input, destLen)
	case "arith":
		out, err = arith.Decompress(input, destLen)
	case "lz77":
		out, err = lz77.Decompress(input, destLen)
	case "lzcl":
		out, err = lzcl.Decompress(input, destLen)
	default:
		return fmt.Errorf("unsupported -codec %q", *codecFlag)
	}
	if err != nil {
		return err
	}
	_, err = bytes.NewReader(out).WriteTo(os.Stdout)
	return err
}
