// Copyright (C) 2022 Sneller, Inc.
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

// Command fbjson prints FlatBuffer files as JSON to stdout, one object
// per input file, the way cmd/dump walks a list of ion files and
// prints each as JSON through a single shared bufio.Writer.
//
// There is no schema compiler wired into this repo (fbjson/callback.go's
// ABI is the contract such a compiler targets, per spec.md §1), so this
// command links in internal/testschema's hand-written Widget binding as
// its root schema. A real deployment swaps that single import for
// flatc-generated bindings; nothing else in main.go changes.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/flatjson/fbprint/fbjson"
	"github.com/flatjson/fbprint/internal/testschema"
)

func main() {
	var (
		pretty       = flag.Int("pretty", 0, "indent width; 0 for compact output")
		skipDefault  = flag.Bool("skip-default", true, "elide fields equal to their schema default")
		forceDefault = flag.Bool("force-default", false, "materialize schema defaults for absent fields")
		unquoteNames = flag.Bool("unquote-names", false, "emit bare identifiers unquoted")
		enumInteger  = flag.Bool("enum-integer", false, "render enums as their underlying integer")
		urlSafeB64   = flag.Bool("url-safe-base64", false, "use the URL-safe base64 alphabet for byte vectors")
		maxDepth     = flag.Int("max-depth", 64, "maximum table nesting depth")
		identifier   = flag.String("identifier", "", "required 4-byte root file identifier; empty accepts any")
		configPath   = flag.String("config", "", "YAML config file; its settings on top of the built-in defaults replace all flags above except -z")
		zstdInput    = flag.Bool("z", false, "treat input as zstd-compressed")
	)
	flag.Parse()

	cfg := fbjson.NewConfig()
	cfg.Indent = *pretty
	cfg.SkipDefault = *skipDefault
	cfg.ForceDefault = *forceDefault
	cfg.UnquoteNames = *unquoteNames
	cfg.EnumAsInteger = *enumInteger
	cfg.MaxDepth = *maxDepth
	cfg.Identifier = *identifier
	if *urlSafeB64 {
		cfg.Base64 = fbjson.Base64URL
	}

	if *configPath != "" {
		doc, err := os.ReadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fbjson[%s]: can't read config %q: %s\n", uuid.NewString(), *configPath, err)
			os.Exit(1)
		}
		cfg, err = fbjson.LoadConfig(doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fbjson[%s]: can't parse config %q: %s\n", uuid.NewString(), *configPath, err)
			os.Exit(1)
		}
	}

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}

	o := bufio.NewWriter(os.Stdout)
	status := 0
	for _, arg := range args {
		buf, err := loadInput(arg, *zstdInput)
		if err != nil {
			reqID := uuid.NewString()
			fmt.Fprintf(os.Stderr, "fbjson[%s]: %s: %s\n", reqID, arg, err)
			status = 1
			continue
		}
		ctx := fbjson.NewFileContext(o, cfg)
		fbjson.TableAsRoot(ctx, buf.bytes, testschema.WidgetTable)
		// TableAsRoot's own trailing newline is only a partial flush
		// (DESIGN.md), so each Context needs its own full flush before
		// it goes out of scope, or its tail bytes never reach o.
		ctx.Flush()
		buf.unmap()
		if err := ctx.Err(); err != nil {
			reqID := uuid.NewString()
			fmt.Fprintf(os.Stderr, "fbjson[%s]: %s: %s\n", reqID, arg, err)
			status = 1
		}
	}
	// o itself is only flushed once, after every file's Context has
	// already pushed its bytes into it — the same one-flush-at-the-end
	// pairing cmd/dump uses for its shared bufio.Writer.
	if err := o.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(status)
}
