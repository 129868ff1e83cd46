package walker

import (
	"path"
	"strings"

	"github.com/bethropolis/dump-source/internal/ignore"
)

// Files with these names are never collected, whatever their extension.
var protectedNames = map[string]struct{}{
	".env":      {},
	"constant":  {},
	"constants": {},
}

// exampleEnvName is the env template that stays collectable
const exampleEnvName = ".example.env"

// Directories with these names are never entered.
var prunedDirNames = map[string]struct{}{
	".git":         {},
	".svn":         {},
	".hg":          {},
	"node_modules": {},
	".DS_Store":    {},
	"__pycache__":  {},
}

// Filter is the per-run selection policy: the ignore rules plus the
// allowed extensions. It is read-only once built.
type Filter struct {
	matcher    *ignore.IgnoreMatcher
	extensions map[string]struct{}
}

// NewFilter builds a Filter. Each allowed extension is either a dotted
// suffix (".c") or a literal basename ("Makefile").
func NewFilter(matcher *ignore.IgnoreMatcher, extensions []string) *Filter {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[ext] = struct{}{}
	}
	return &Filter{matcher: matcher, extensions: set}
}

// ShouldInclude decides whether the file at the root-relative path rel is
// collected. The checks run in a fixed order and the first failing one
// supplies the reason.
func (f *Filter) ShouldInclude(rel string) (bool, SkippedReason) {
	if f.matcher.ShouldIgnore(rel, false) {
		return false, ReasonIgnoredRule
	}

	base := path.Base(rel)
	if isProtected(base) {
		return false, ReasonExcludedName
	}

	if f.matcher.InRegistry(rel) {
		return false, ReasonIgnoredName
	}

	if !f.allowed(base) {
		return false, ReasonFilteredExtension
	}

	return true, ""
}

// ShouldDescend decides whether the directory at rel is entered
func (f *Filter) ShouldDescend(rel string) (bool, SkippedReason) {
	if f.matcher.ShouldIgnore(rel, true) {
		return false, ReasonIgnoredRule
	}
	if _, ok := prunedDirNames[path.Base(rel)]; ok {
		return false, ReasonPrunedDir
	}
	return true, ""
}

func (f *Filter) allowed(base string) bool {
	if ext := Extname(base); ext != "" {
		if _, ok := f.extensions[ext]; ok {
			return true
		}
	}
	_, ok := f.extensions[base]
	return ok
}

func isProtected(base string) bool {
	if base == exampleEnvName {
		return false
	}
	_, ok := protectedNames[base]
	return ok
}

// Extname returns the extension of a file name, including the dot. A
// leading dot does not start an extension, so ".env" has none while
// ".example.env" has ".env".
func Extname(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return ""
	}
	return name[i:]
}
