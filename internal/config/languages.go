package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed languages.yaml
var builtinLanguages []byte

var (
	// ErrUnknownLanguage is returned when no language matches by name or
	// abbreviation
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrNoExtensions is returned when neither a language nor extensions
	// were given
	ErrNoExtensions = errors.New("at least one language or extension must be specified")
)

// Language describes the files that belong to one language
type Language struct {
	FileExtensions []string `yaml:"file_extensions" json:"file_extensions"`
	Abbreviations  []string `yaml:"abbreviations" json:"abbreviations"`
}

// Languages maps a language name to its definition
type Languages map[string]Language

// DefaultLanguages returns the built-in language table
func DefaultLanguages() (Languages, error) {
	var langs Languages
	if err := yaml.Unmarshal(builtinLanguages, &langs); err != nil {
		return nil, fmt.Errorf("config: failed to parse built-in languages: %w", err)
	}
	return langs, nil
}

// LoadLanguages returns the built-in table with the definitions from path
// layered on top. An empty path returns the built-in table. The file may be
// YAML or JSON.
func LoadLanguages(path string) (Languages, error) {
	langs, err := DefaultLanguages()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return langs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read languages file: %w", err)
	}

	var overrides Languages
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("config: failed to parse languages file %s: %w", path, err)
	}
	for name, lang := range overrides {
		langs[name] = lang
	}
	return langs, nil
}

// Names returns the language names in sorted order
func (l Languages) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Find resolves name to a language key by exact name or abbreviation,
// ignoring case. Names are checked before abbreviations so a language can
// never be shadowed by another one's abbreviation.
func (l Languages) Find(name string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return "", false
	}

	names := l.Names()
	for _, key := range names {
		if strings.ToLower(key) == want {
			return key, true
		}
	}
	for _, key := range names {
		for _, abbr := range l[key].Abbreviations {
			if strings.ToLower(abbr) == want {
				return key, true
			}
		}
	}
	return "", false
}

// ResolveExtensions combines the extensions of lang (if any) with extra,
// dropping duplicates while keeping first occurrences in order.
func ResolveExtensions(langs Languages, lang string, extra []string) ([]string, error) {
	var resolved []string

	if lang != "" {
		key, ok := langs.Find(lang)
		if !ok {
			return nil, fmt.Errorf("%w: no configuration found for language %q", ErrUnknownLanguage, lang)
		}
		resolved = append(resolved, langs[key].FileExtensions...)
	}
	resolved = append(resolved, extra...)

	seen := make(map[string]struct{}, len(resolved))
	unique := resolved[:0]
	for _, ext := range resolved {
		if ext == "" {
			continue
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		unique = append(unique, ext)
	}

	if len(unique) == 0 {
		return nil, ErrNoExtensions
	}
	return unique, nil
}
