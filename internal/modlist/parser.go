package modlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// maxTokenSize bounds a single reference token. Mod URLs are well under
// 1KB; anything larger indicates the file is not a mod list.
const maxTokenSize = 4 * 1024

// Parse reads whitespace-delimited mod reference tokens from r.
// Tokens are returned in input order. Duplicates are preserved: every
// token in the file must yield exactly one entry in the final report, so
// nothing is dropped or merged here.
func Parse(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024), maxTokenSize)
	scanner.Split(bufio.ScanWords)

	tokens := make([]string, 0)
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mod list: %w", err)
	}
	return tokens, nil
}

// ParseFile reads the mod list at path.
// A missing or unreadable file is a fatal setup error for the caller.
func ParseFile(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided mod list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open mod list: %w", err)
	}
	defer f.Close()

	tokens, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return tokens, nil
}
