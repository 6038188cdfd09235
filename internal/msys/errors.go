package msys

import (
	"errors"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

var (
	// ErrMissingEnvironmentVariable is returned when the variable is not set at all.
	ErrMissingEnvironmentVariable = errors.New("environment variable is not set")
	// ErrUnknownEnvironment is returned in strict mode for values outside the table.
	ErrUnknownEnvironment = errors.New("unknown MSYS2 environment")
)

// MissingEnvironmentVariableError reports which variable was absent.
type MissingEnvironmentVariableError struct {
	Name string
}

func (e *MissingEnvironmentVariableError) Error() string {
	return fmt.Sprintf("environment variable %s is not set; run from an MSYS2 shell or export %s", e.Name, e.Name)
}

func (e *MissingEnvironmentVariableError) Is(target error) bool {
	return target == ErrMissingEnvironmentVariable
}

// UnknownEnvironmentError reports a value that has no prefix mapping.
type UnknownEnvironmentError struct {
	Value      string
	Suggestion Environment
}

func (e *UnknownEnvironmentError) Error() string {
	msg := fmt.Sprintf("unknown MSYS2 environment '%s'", e.Value)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean '%s'?)", e.Suggestion)
	}
	return msg + "; valid values: " + joinEnvironments(KnownEnvironments())
}

// joinEnvironments lists the set in sorted order for stable messages.
func joinEnvironments(set mapset.Set[Environment]) string {
	names := make([]string, 0, set.Cardinality())
	for _, env := range mapset.Sorted(set) {
		names = append(names, string(env))
	}
	return strings.Join(names, ", ")
}

func (e *UnknownEnvironmentError) Is(target error) bool {
	return target == ErrUnknownEnvironment
}
