// g9parse decodes a g9 text export and prints the parsed metadata as
// JSON. Useful for checking what the service would extract from a file
// before uploading it.
//
// Usage:
//
//	g9parse [-kind project|set] file.txt
//
// Without -kind the file is treated as a set export when its name
// contains ".set.", else as a project export.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/geodesy-data/gravity.report/internal/g9"
)

var kind = flag.String("kind", "", "Export kind: project or set (default: guess from filename)")

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: g9parse [-kind project|set] <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read %s: %v", path, err)
	}
	text := g9.DecodeText(data)

	k := *kind
	if k == "" {
		k = "project"
		if strings.Contains(strings.ToLower(path), ".set.") {
			k = "set"
		}
	}

	var parsed interface{}
	switch k {
	case "project":
		parsed = g9.ParseProject(text)
	case "set":
		parsed = g9.ParseSets(text)
	default:
		log.Fatalf("unknown kind %q (want project or set)", k)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(parsed); err != nil {
		log.Fatalf("failed to encode output: %v", err)
	}
}
