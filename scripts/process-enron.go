//go:build ignore

// Process an Enron-Spam style corpus (one message per file under spam/ and
// ham/ directories) into the label<TAB>text format read by nb-bench.
// Usage: go run ./scripts/process-enron.go [inDir] [outFile]
package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func main() {
	inDir := "testdata/enron"
	outFile := "testdata/enron.tsv"
	if len(os.Args) > 1 {
		inDir = os.Args[1]
	}
	if len(os.Args) > 2 {
		outFile = os.Args[2]
	}

	out, err := os.Create(outFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", outFile, err)
		os.Exit(1)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "# Source: %s\n", inDir)

	total := 0
	for _, label := range []string{"ham", "spam"} {
		fmt.Printf("Processing %s...\n", label)
		messages, err := collect(filepath.Join(inDir, label))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", label, err)
			continue
		}
		for _, msg := range messages {
			fmt.Fprintf(w, "%s\t%s\n", label, msg)
		}
		fmt.Printf("  -> %d messages\n", len(messages))
		total += len(messages)
	}

	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outFile, err)
		os.Exit(1)
	}

	fmt.Printf("\nDone! %d messages written to %s\n", total, outFile)
}

// collect reads every regular file below dir as one message, flattened to a
// single line so it survives the line-oriented corpus format.
func collect(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(paths)

	var messages []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		// Tabs and newlines would break the corpus format
		msg := strings.Join(strings.Fields(string(data)), " ")
		if msg == "" {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
