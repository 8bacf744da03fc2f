package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	lang, err := Parse([]byte(`
grammar:
  start: S
  rules:
    S:
      - [no, so]
lexicon:
  entries:
    hestur:
      - {lemma: hestur, cat: no, variants: [kk, et, nf]}
abbreviations: [t.d.]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lang.Grammar.Start != "S" {
		t.Errorf("start = %q", lang.Grammar.Start)
	}
	if len(lang.Lexicon.Lookup("hestur")) != 1 {
		t.Error("lexicon entry missing")
	}
	if len(lang.Abbreviations) != 1 {
		t.Error("abbreviation missing")
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	if _, err := Parse([]byte("grammar: [not a mapping")); err == nil {
		t.Error("malformed YAML accepted")
	}
	// Well-formed YAML, invalid grammar.
	if _, err := Parse([]byte("grammar:\n  start: S\n")); err == nil {
		t.Error("grammar without rules accepted")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lang.yaml")
	data := "grammar:\n  start: S\n  rules:\n    S:\n      - [no]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("Load: %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestDefault(t *testing.T) {
	lang, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if err := lang.Grammar.Validate(); err != nil {
		t.Errorf("embedded grammar invalid: %v", err)
	}
	if len(lang.Lexicon.Entries) == 0 {
		t.Error("embedded lexicon is empty")
	}
	again, _ := Default()
	if again != lang {
		t.Error("Default should return the shared instance")
	}
}
