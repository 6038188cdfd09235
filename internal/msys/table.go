// Package msys maps MSYS2 environment names (the MSYSTEM variable) to the
// library prefix labels used when selecting prebuilt library variants.
package msys

import (
	"strings"

	"github.com/agnivade/levenshtein"
	mapset "github.com/deckarep/golang-set/v2"
)

// Environment is a lowercased MSYSTEM value such as "mingw64".
type Environment string

// Prefix is the library prefix label printed for an environment.
type Prefix string

const (
	EnvironmentMingw64    Environment = "mingw64"
	EnvironmentMingw32    Environment = "mingw32"
	EnvironmentUcrt64     Environment = "ucrt64"
	EnvironmentClang64    Environment = "clang64"
	EnvironmentClangArm64 Environment = "clangarm64"
	EnvironmentClang32    Environment = "clang32"
)

const (
	PrefixX64Msvcrt Prefix = "x64-msvcrt"
	PrefixMsvcrt    Prefix = "msvcrt"
	PrefixX64Ucrt   Prefix = "x64-ucrt"
	PrefixUcrt      Prefix = "ucrt"
)

// Mapping is a single row of the lookup table.
type Mapping struct {
	Environment Environment `json:"environment" yaml:"environment"`
	Prefix      Prefix      `json:"prefix" yaml:"prefix"`
}

// mappings must only be read; use Mappings for a copy.
var mappings = []Mapping{
	{EnvironmentMingw64, PrefixX64Msvcrt},
	{EnvironmentMingw32, PrefixMsvcrt},
	{EnvironmentUcrt64, PrefixX64Ucrt},
	{EnvironmentClang64, PrefixX64Ucrt},
	{EnvironmentClangArm64, PrefixX64Ucrt},
	{EnvironmentClang32, PrefixUcrt},
}

// maxSuggestionDistance is the largest edit distance still worth suggesting.
const maxSuggestionDistance = 2

// Mappings returns a copy of the lookup table in declaration order.
func Mappings() []Mapping {
	out := make([]Mapping, len(mappings))
	copy(out, mappings)
	return out
}

// KnownEnvironments returns the set of environment names the table knows about.
func KnownEnvironments() mapset.Set[Environment] {
	set := mapset.NewThreadUnsafeSetWithSize[Environment](len(mappings))
	for _, m := range mappings {
		set.Add(m.Environment)
	}
	return set
}

// Normalize lowercases an MSYSTEM value. No trimming is applied.
func Normalize(name string) Environment {
	return Environment(strings.ToLower(name))
}

// Lookup returns the prefix for name, matched case-insensitively.
func Lookup(name string) (Prefix, bool) {
	env := Normalize(name)
	for _, m := range mappings {
		if m.Environment == env {
			return m.Prefix, true
		}
	}
	return "", false
}

// SuggestEnvironment finds the known environment closest to name for typo
// detection. It returns the empty string when nothing is within
// maxSuggestionDistance edits or when name is already known.
func SuggestEnvironment(name string) Environment {
	env := Normalize(name)
	if env == "" {
		return ""
	}

	var best Environment
	bestDistance := maxSuggestionDistance + 1

	for _, m := range mappings {
		distance := levenshtein.ComputeDistance(string(env), string(m.Environment))
		if distance == 0 {
			return ""
		}
		if distance < bestDistance {
			bestDistance = distance
			best = m.Environment
		}
	}

	return best
}
