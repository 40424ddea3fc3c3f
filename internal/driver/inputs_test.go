package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"oricc/internal/diag"
)

func writeObject(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte{0x7f, 'E', 'L', 'F'}, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestVerifyInputsAllPresent(t *testing.T) {
	dir := t.TempDir()
	a := writeObject(t, dir, "a.o")
	b := writeObject(t, dir, "b.o")

	bag := diag.NewBag(16)
	err := VerifyInputs(context.Background(), []string{a, b}, 0, diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("VerifyInputs: %v", err)
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestVerifyInputsMissing(t *testing.T) {
	dir := t.TempDir()
	a := writeObject(t, dir, "a.o")
	gone1 := filepath.Join(dir, "gone1.o")
	gone2 := filepath.Join(dir, "gone2.o")

	bag := diag.NewBag(16)
	err := VerifyInputs(context.Background(), []string{gone1, a, gone2}, 2, diag.BagReporter{Bag: bag})
	if err == nil {
		t.Fatal("expected error for missing inputs")
	}

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(items))
	}
	// Report order must follow input order regardless of check order.
	if !strings.Contains(items[0].Message, "gone1.o") || !strings.Contains(items[1].Message, "gone2.o") {
		t.Errorf("diagnostics out of order: %q, %q", items[0].Message, items[1].Message)
	}
	for _, d := range items {
		if d.Code != diag.LnkMissingInput {
			t.Errorf("code = %v, want LnkMissingInput", d.Code)
		}
		if d.Severity != diag.SevError {
			t.Errorf("severity = %v, want error", d.Severity)
		}
	}
}

func TestVerifyInputsDirectory(t *testing.T) {
	dir := t.TempDir()

	bag := diag.NewBag(16)
	err := VerifyInputs(context.Background(), []string{dir}, 0, diag.BagReporter{Bag: bag})
	if err == nil {
		t.Fatal("expected error for a directory input")
	}
	if bag.Len() != 1 || !strings.Contains(bag.Items()[0].Message, "is a directory") {
		t.Errorf("diagnostics = %v", bag.Items())
	}
}

func TestVerifyInputsEmpty(t *testing.T) {
	bag := diag.NewBag(16)
	err := VerifyInputs(context.Background(), nil, 0, diag.BagReporter{Bag: bag})
	if err == nil {
		t.Fatal("expected error for an empty input list")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LnkNoInputs {
		t.Errorf("diagnostics = %v", bag.Items())
	}
}

func TestVerifyInputsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := VerifyInputs(ctx, []string{"a.o", "b.o"}, 1, nil)
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
}
