package msys

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/dorcha-inc/msysprefix/internal/core"
)

// DefaultVariable is the environment variable MSYS2 shells export.
const DefaultVariable = "MSYSTEM"

// LookupEnvFunc has the signature of os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// Result is the outcome of a resolution. Prefix is empty when Matched is false.
type Result struct {
	Variable    string
	Environment Environment
	Prefix      Prefix
	Matched     bool
}

// Resolver reads the MSYSTEM variable and maps it to a library prefix.
type Resolver struct {
	variable  string
	lookupEnv LookupEnvFunc
	strict    bool
	clock     clockwork.Clock
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithVariable reads name instead of MSYSTEM.
func WithVariable(name string) Option {
	return func(r *Resolver) {
		if name != "" {
			r.variable = name
		}
	}
}

// WithLookupEnv replaces os.LookupEnv, mainly for tests.
func WithLookupEnv(fn LookupEnvFunc) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.lookupEnv = fn
		}
	}
}

// WithStrict makes unknown environment names an error instead of empty output.
func WithStrict(strict bool) Option {
	return func(r *Resolver) {
		r.strict = strict
	}
}

// WithClock sets the clock used to time resolutions.
func WithClock(clock clockwork.Clock) Option {
	return func(r *Resolver) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// NewResolver creates a resolver reading MSYSTEM from the process environment.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		variable:  DefaultVariable,
		lookupEnv: os.LookupEnv,
		clock:     clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Variable returns the name of the environment variable the resolver reads.
func (r *Resolver) Variable() string {
	return r.variable
}

// Resolve reads the variable and looks it up in the table.
// An unset variable is an error; a set but unknown (or empty) value is not,
// unless the resolver is strict.
func (r *Resolver) Resolve(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	start := r.clock.Now()

	raw, ok := r.lookupEnv(r.variable)
	if !ok {
		err := &MissingEnvironmentVariableError{Name: r.variable}
		core.LogResolution(r.variable, "", "", r.clock.Since(start).Seconds(), err)
		return Result{}, err
	}

	result := Result{
		Variable:    r.variable,
		Environment: Normalize(raw),
	}
	result.Prefix, result.Matched = Lookup(raw)

	if !result.Matched {
		suggestion := SuggestEnvironment(raw)
		if suggestion != "" {
			zap.L().Debug("Unknown MSYS2 environment, found a close match",
				zap.String("value", raw),
				zap.String("suggestion", string(suggestion)))
		}
		if r.strict {
			err := &UnknownEnvironmentError{Value: raw, Suggestion: suggestion}
			core.LogResolution(r.variable, raw, "", r.clock.Since(start).Seconds(), err)
			return Result{}, err
		}
	}

	core.LogResolution(r.variable, raw, string(result.Prefix), r.clock.Since(start).Seconds(), nil)
	return result, nil
}

// WritePrefix writes the prefix followed by a newline when the result matched.
// Unmatched results write nothing.
func WritePrefix(w io.Writer, result Result) error {
	if !result.Matched {
		return nil
	}
	if _, err := fmt.Fprintln(w, result.Prefix); err != nil {
		return fmt.Errorf("failed to write prefix: %w", err)
	}
	return nil
}
