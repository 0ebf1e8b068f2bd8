package pipeline

import (
	"strings"
	"testing"

	"github.com/mofmt/mofmt/internal/config"
)

func TestFormatProducesOutput(t *testing.T) {
	res, err := Format("model Foo\n  Real x;\nend Foo;\n", config.Default())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if res.Output == "" {
		t.Fatalf("Format() produced empty output")
	}
	if res.Tree == nil || res.Store == nil {
		t.Fatalf("Format() result missing Tree/Store")
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	src := "model Foo\n  Real x;\n  Real y;\nequation\n  x = y + 1;\nend Foo;\n"
	cfg := config.Default()

	first, err := Format(src, cfg)
	if err != nil {
		t.Fatalf("first Format() error = %v", err)
	}
	second, err := Format(first.Output, cfg)
	if err != nil {
		t.Fatalf("second Format() error = %v", err)
	}
	if first.Output != second.Output {
		t.Fatalf("formatting is not idempotent:\nfirst:\n%s\nsecond:\n%s", first.Output, second.Output)
	}
}

func TestFormatCRLF(t *testing.T) {
	cfg := config.Default()
	cfg.CRLF = true
	res, err := Format("model Foo\n  Real x;\nend Foo;\n", cfg)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(res.Output, "\r\n") {
		t.Fatalf("Format() with CRLF=true produced no \\r\\n in output: %q", res.Output)
	}
}

func TestFormatReportsLexicalDiagnostics(t *testing.T) {
	// The illegal character sits between two complete class definitions, so
	// scanning records it while parser recovery still reaches end of input.
	res, err := Format("model Foo\n  Real x;\nend Foo;\n`\nmodel Bar\nend Bar;\n", config.Default())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if len(res.Diagnostics) == 0 {
		t.Fatalf("expected at least one diagnostic for the illegal character")
	}
}

func TestFormatReportsSyntacticDiagnostics(t *testing.T) {
	res, err := Format("model 123\nend 123;\n", config.Default())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if len(res.Diagnostics) == 0 {
		t.Fatalf("expected at least one syntactic diagnostic for the malformed class specifier")
	}
}

func TestFormatIndentWidthHonored(t *testing.T) {
	cfg := config.Config{Indent: 4, CRLF: false}
	res, err := Format("model Foo\n  Real x;\nend Foo;\n", cfg)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(res.Output, "\n    Real") {
		t.Fatalf("expected 4-space indent in output, got:\n%s", res.Output)
	}
}
