package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/joseph-ayodele/tourpack/constants"
	"github.com/joseph-ayodele/tourpack/internal/common"
	"github.com/joseph-ayodele/tourpack/internal/dataset"
)

func TestNewFromConfig_RulesEndToEnd(t *testing.T) {
	dir := t.TempDir()
	paths := []string{filepath.Join(dir, "bhutan.txt"), filepath.Join(dir, "missing.txt")}
	text := "Magical Bhutan Tour\nVisit Paro and Thimphu.\nDay 1: Arrive in Paro\nDay 2: Thimphu\n"
	if err := os.WriteFile(paths[0], []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := common.DefaultConfig()
	p, closeFn, err := NewFromConfig(context.Background(), cfg, quietLogger())
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	defer closeFn()

	res, err := p.Run(context.Background(), dataset.Empty(), paths)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Records) != 1 || len(res.Failures) != 1 {
		t.Fatalf("records/failures = %d/%d", len(res.Records), len(res.Failures))
	}
	if got := res.Records[0][constants.FieldCountry]; got != "Bhutan" {
		t.Errorf("country = %q, want Bhutan", got)
	}
	if res.Failures[0].Kind != common.KindDocumentReadFailure {
		t.Errorf("failure kind = %q", res.Failures[0].Kind)
	}
}

func TestNewRecordExtractor_UnknownStrategy(t *testing.T) {
	cfg := common.DefaultConfig()
	cfg.Batch.Strategy = "magic"
	_, closeFn, err := NewRecordExtractor(context.Background(), cfg, quietLogger())
	if err == nil {
		t.Fatal("expected error for unknown strategy")
	}
	if closeFn == nil {
		t.Error("close func must never be nil")
	}
}
