// Copyright (C) 2024 The wt-blk Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/axiangcoding/wt-blk/unpack"
)

func main() {
	format := flag.String("format", "raw", "output format for .blk members: raw, json, or text")
	one := flag.String("one", "", "decode only the named archive member")
	versions := flag.Bool("versions", false, "print the archive's outer-header version(s) and exit")
	strict := flag.Bool("strict", false, "abort on the first per-file decode error")
	workers := flag.Int("workers", 0, "number of fan-out workers (0 = GOMAXPROCS)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: wtblk [flags] <archive>")
		os.Exit(2)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "can't open %q: %s\n", args[0], err)
		os.Exit(1)
	}

	u, err := unpack.FromBytes(args[0], data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", args[0], err)
		os.Exit(1)
	}
	defer u.Close()

	if *versions {
		for _, v := range u.QueryVersions() {
			fmt.Printf("%s\t%s\t%s\t%s\n", v.Path, v.Meta.HeaderType, v.Meta.Platform, v.Meta.Packing)
			if v.Meta.Version != nil {
				fmt.Printf("\tversion %s\n", v.Meta.Version)
			}
		}
		return
	}

	opts := unpack.DefaultOptions()
	opts.Strict = *strict
	switch *format {
	case "raw":
		opts.Format = unpack.FormatRaw
	case "json":
		opts.Format = unpack.FormatJSON
	case "text":
		opts.Format = unpack.FormatBlkText
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q\n", *format)
		os.Exit(2)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if *one != "" {
		entry, err := u.UnpackOne(*one, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", *one, err)
			os.Exit(1)
		}
		if entry.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", entry.Path, entry.Err)
			os.Exit(1)
		}
		out.Write(entry.Bytes)
		return
	}

	entries, _, err := u.UnpackAll(context.Background(), opts, *workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unpack_all: %s\n", err)
		os.Exit(1)
	}
	for _, e := range entries {
		if e.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", e.Path, e.Err)
			continue
		}
		fmt.Fprintf(out, "=== %s (%d bytes) ===\n", e.Path, len(e.Bytes))
		out.Write(e.Bytes)
		out.WriteByte('\n')
	}
}
