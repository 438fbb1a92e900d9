package modlist

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// TestParse tests whitespace-delimited token extraction.
func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "newline separated",
			input: "https://mod.io/g/drg/m/a\nhttps://mod.io/g/drg/m/b\n",
			want:  []string{"https://mod.io/g/drg/m/a", "https://mod.io/g/drg/m/b"},
		},
		{
			name:  "mixed whitespace",
			input: "123\t456  789\n\n  1011",
			want:  []string{"123", "456", "789", "1011"},
		},
		{
			name:  "duplicates preserved",
			input: "123 123 123",
			want:  []string{"123", "123", "123"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
		{
			name:  "whitespace only",
			input: " \n\t \n",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, expected %v", got, tt.want)
			}
		})
	}
}

// TestParseFile tests reading a mod list from disk.
func TestParseFile(t *testing.T) {
	t.Parallel()

	t.Run("reads tokens from file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "mods.txt")
		if err := os.WriteFile(path, []byte("123\n456\n"), 0600); err != nil {
			t.Fatal(err)
		}

		got, err := ParseFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, []string{"123", "456"}) {
			t.Errorf("got %v, expected [123 456]", got)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := ParseFile(filepath.Join(t.TempDir(), "does-not-exist.txt"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("empty file yields empty slice", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.txt")
		if err := os.WriteFile(path, nil, 0600); err != nil {
			t.Fatal(err)
		}

		got, err := ParseFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("got %d tokens, expected 0", len(got))
		}
	})
}
