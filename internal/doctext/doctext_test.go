package doctext

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joseph-ayodele/tourpack/constants"
)

type fakeRunner struct {
	out   string
	err   error
	calls [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return nil, []byte("boom"), f.err
	}
	return []byte(f.out), nil, nil
}

func newTestExtractor(cfg Config, r Runner) *Extractor {
	return NewExtractor(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))).WithRunner(r)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestExtract_PDFViaPdftotext(t *testing.T) {
	r := &fakeRunner{out: "Nepal Explorer\n  Day 1:   Kathmandu\n\fDay 2: Pokhara\n\f"}
	e := newTestExtractor(Config{}, r)
	path := writeFile(t, "nepal.pdf", "%PDF-1.4 stub")

	res, err := e.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Method != "pdftotext" || res.SourceType != constants.PDF {
		t.Errorf("method/source = %s/%s", res.Method, res.SourceType)
	}
	if res.Pages != 2 {
		t.Errorf("pages = %d, want 2", res.Pages)
	}
	want := "Nepal Explorer\n Day 1: Kathmandu\nDay 2: Pokhara"
	if res.Text != want {
		t.Errorf("text = %q, want %q", res.Text, want)
	}
	if strings.Contains(res.Text, "\f") {
		t.Error("form feed page markers must be removed")
	}
	if len(r.calls) != 1 || r.calls[0][0] != "pdftotext" || r.calls[0][len(r.calls[0])-1] != "-" {
		t.Errorf("unexpected command: %v", r.calls)
	}
}

func TestExtract_PDFFailureWithoutFallback(t *testing.T) {
	e := newTestExtractor(Config{DisablePDFFallback: true}, &fakeRunner{err: errors.New("exit status 1")})
	path := writeFile(t, "broken.pdf", "not a pdf")
	if _, err := e.Extract(context.Background(), path); err == nil {
		t.Fatal("expected error")
	}
}

func TestExtract_PDFFallbackFailsOnGarbage(t *testing.T) {
	e := newTestExtractor(Config{}, &fakeRunner{err: errors.New("exit status 1")})
	path := writeFile(t, "broken.pdf", "not a pdf")
	res, err := e.Extract(context.Background(), path)
	if err == nil {
		t.Fatal("expected error when both pdftotext and pdfcpu fail")
	}
	if len(res.Warnings) == 0 {
		t.Error("expected pdftotext failure to be kept as a warning")
	}
}

func TestExtract_PlainText(t *testing.T) {
	path := writeFile(t, "bali.txt", "\xEF\xBB\xBFBali\tHighlights\r\nUbud   and Kuta\r\n\r\n\r\n\r\nInclusions: Breakfast  ")
	res, err := newTestExtractor(Config{}, &fakeRunner{}).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := "Bali Highlights\nUbud and Kuta\n\nInclusions: Breakfast"
	if res.Text != want {
		t.Errorf("text = %q, want %q", res.Text, want)
	}
}

func TestExtract_HTML(t *testing.T) {
	page := `<html><head><title>ignored</title><style>p{}</style></head><body>
<h1>Thailand Island Hopper</h1>
<p>Phuket and Krabi<br>by boat</p>
<script>var x = "Day 9";</script>
<ul><li>Day 1: Phuket</li><li>Day 2: Krabi</li></ul>
</body></html>`
	path := writeFile(t, "thai.html", page)
	res, err := newTestExtractor(Config{}, &fakeRunner{}).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	lines := strings.Split(res.Text, "\n")
	if lines[0] != "Thailand Island Hopper" {
		t.Errorf("first line = %q", lines[0])
	}
	for _, want := range []string{"Phuket and Krabi", "by boat", "Day 1: Phuket", "Day 2: Krabi"} {
		found := false
		for _, l := range lines {
			if l == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing line %q in %q", want, res.Text)
		}
	}
	if strings.Contains(res.Text, "Day 9") || strings.Contains(res.Text, "ignored") {
		t.Errorf("script or head text leaked: %q", res.Text)
	}
}

func TestExtract_Errors(t *testing.T) {
	e := newTestExtractor(Config{MaxFileMB: 1}, &fakeRunner{})

	if _, err := e.Extract(context.Background(), writeFile(t, "x.docx", "zip")); err == nil {
		t.Error("expected unsupported extension error")
	}
	if _, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected missing file error")
	}
	big := writeFile(t, "big.txt", strings.Repeat("a", 1<<20+1))
	if _, err := e.Extract(context.Background(), big); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("err = %v, want ErrFileTooLarge", err)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"nfc", "Cafe\u0301", "Caf\u00e9"},
		{"nbsp", "USD\u00a01,200", "USD 1,200"},
		{"trailing spaces", "a  \nb\t\n", "a\nb"},
		{"blank runs", "a\n\n\n\n\nb", "a\n\nb"},
		{"form feed", "page one\n\fpage two", "page one\npage two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStreamText(t *testing.T) {
	stream := []byte("BT\n/F1 12 Tf\n72 712 Td\n(Vietnam Discovery) Tj\n0 -14 Td\n[(Day 1: Ha) 20 (noi)] TJ\nT*\n(Caf\\351) Tj\nET\n")
	got := streamText(stream)
	want := "Vietnam Discovery\nDay 1: Hanoi\nCaf\xe9"
	if got != want {
		t.Errorf("streamText = %q, want %q", got, want)
	}
}
