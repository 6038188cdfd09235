package core

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// MustFprintf is a wrapper around fmt.Fprintf that exits the program if it fails.
func MustFprintf(w io.Writer, format string, a ...any) {
	_, err := fmt.Fprintf(w, format, a...)
	if err != nil {
		zap.L().Fatal("Failed to fprintf", zap.Error(err), zap.String("format", format), zap.Any("a", a))
	}
}

// JoinMapKeys joins the keys of a map into a sorted, comma-separated string.
// Useful for error messages that need to list valid values.
func JoinMapKeys[T comparable](m map[T]struct{}) string {
	sliceStrings := make([]string, 0, len(m))
	for k := range maps.Keys(m) {
		sliceStrings = append(sliceStrings, fmt.Sprintf("%v", k))
	}
	slices.Sort(sliceStrings)
	return strings.Join(sliceStrings, ", ")
}
