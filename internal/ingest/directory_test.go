package ingest

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func touch(t *testing.T, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		p := filepath.Join(root, r)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestListDocuments(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"zanzibar.pdf",
		"bali/ubud.TXT",
		"bali/notes.docx",
		"agra.html",
		"drafts/.hidden.pdf",
		".cache/old.pdf",
		"readme.md",
	)

	tests := []struct {
		name       string
		exts       []string
		skipHidden bool
		want       []string
	}{
		{"defaults skip hidden", nil, true, []string{"agra.html", "bali/ubud.TXT", "readme.md", "zanzibar.pdf"}},
		{"defaults with hidden", nil, false, []string{".cache/old.pdf", "agra.html", "bali/ubud.TXT", "drafts/.hidden.pdf", "readme.md", "zanzibar.pdf"}},
		{"custom exts", []string{".PDF", " html "}, true, []string{"agra.html", "zanzibar.pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, stats, err := ListDocuments(root, tt.exts, tt.skipHidden)
			if err != nil {
				t.Fatalf("ListDocuments: %v", err)
			}
			if r := rel(t, root, got); !slices.Equal(r, tt.want) {
				t.Errorf("paths = %v, want %v", r, tt.want)
			}
			if int(stats.Matched) != len(tt.want) {
				t.Errorf("matched = %d, want %d", stats.Matched, len(tt.want))
			}
		})
	}
}

func TestListDocuments_Errors(t *testing.T) {
	if _, _, err := ListDocuments("  ", nil, true); err == nil {
		t.Error("expected error for empty root")
	}
	if _, _, err := ListDocuments(filepath.Join(t.TempDir(), "nope"), nil, true); err == nil {
		t.Error("expected error for missing root")
	}
}
