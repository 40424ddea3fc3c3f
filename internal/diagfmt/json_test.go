package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"oricc/internal/diag"
)

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(t), JSONOpts{IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Count != 2 || len(decoded.Diagnostics) != 2 {
		t.Fatalf("count = %d, diagnostics = %d, want 2", decoded.Count, len(decoded.Diagnostics))
	}

	first := decoded.Diagnostics[0]
	if first.Severity != "ERROR" || first.Code != "LNK2001" {
		t.Errorf("first = %s/%s, want ERROR/LNK2001", first.Severity, first.Code)
	}
	if first.Title != "Link input does not exist" {
		t.Errorf("first title = %q", first.Title)
	}
	if first.Message != "no such file: a.o" {
		t.Errorf("first message = %q", first.Message)
	}

	second := decoded.Diagnostics[1]
	if second.Severity != "WARNING" || second.Code != "CFG1001" {
		t.Errorf("second = %s/%s, want WARNING/CFG1001", second.Severity, second.Code)
	}
	if len(second.Notes) != 1 || second.Notes[0].Message != "supported: compiler-rt" {
		t.Errorf("second notes = %+v", second.Notes)
	}
}

func TestJSONOmitsNotesByDefault(t *testing.T) {
	out := BuildDiagnosticsOutput(sampleBag(t), JSONOpts{})
	for _, d := range out.Diagnostics {
		if len(d.Notes) != 0 {
			t.Errorf("notes included without IncludeNotes: %+v", d)
		}
	}
}

func TestJSONMax(t *testing.T) {
	out := BuildDiagnosticsOutput(sampleBag(t), JSONOpts{Max: 1})
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d, want 1", out.Count, len(out.Diagnostics))
	}
	if out.Diagnostics[0].Code != "LNK2001" {
		t.Errorf("kept diagnostic = %q, want LNK2001", out.Diagnostics[0].Code)
	}
}

func TestJSONEmptyBag(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, diag.NewBag(4), JSONOpts{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	got := buf.String()
	want := "{\n  \"diagnostics\": [],\n  \"count\": 0\n}\n"
	if got != want {
		t.Errorf("empty output = %q, want %q", got, want)
	}
}
