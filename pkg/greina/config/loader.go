package config

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	defaultOnce sync.Once
	defaultLang *Language
	defaultErr  error
)

// Load reads a Language definition from a YAML file.
func Load(path string) (*Language, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a Language definition from YAML bytes and validates
// the grammar.
func Parse(data []byte) (*Language, error) {
	var lang Language
	if err := yaml.Unmarshal(data, &lang); err != nil {
		return nil, fmt.Errorf("parsing language config: %w", err)
	}
	if err := lang.Grammar.Validate(); err != nil {
		return nil, err
	}
	return &lang, nil
}

// Default returns the embedded demonstration language (a small Icelandic
// lexicon and grammar). The result is shared; callers must not mutate it.
func Default() (*Language, error) {
	defaultOnce.Do(func() {
		defaultLang, defaultErr = Parse(defaultYAML)
	})
	return defaultLang, defaultErr
}
