package refs

import (
	"slices"
	"strings"

	"github.com/ava12/ebnf"
)

// Error and warning codes used by refs:
const (
	UndefinedRuleError = ebnf.ReferenceErrors + iota
	DuplicateRuleError
	DuplicateRuleWarning
	UnusedRuleWarning
	LeftRecursionWarning
)

// UndefinedError lists every referenced rule name having no definition.
type UndefinedError struct {
	names []string
	err   *ebnf.Error
}

func newUndefinedError(names []string) *UndefinedError {
	return &UndefinedError{
		names: slices.Clone(names),
		err:   ebnf.FormatError(UndefinedRuleError, "undefined rules: %s", strings.Join(names, ", ")),
	}
}

// Names returns a sorted copy of undefined names.
func (e *UndefinedError) Names() []string {
	return slices.Clone(e.names)
}

func (e *UndefinedError) Error() string {
	return e.err.Message
}

// Unwrap returns underlying *ebnf.Error carrying the error code.
func (e *UndefinedError) Unwrap() error {
	return e.err
}

// DuplicateError lists every rule name defined more than once.
type DuplicateError struct {
	names []string
	err   *ebnf.Error
}

func newDuplicateError(names []string) *DuplicateError {
	return &DuplicateError{
		names: slices.Clone(names),
		err:   ebnf.FormatError(DuplicateRuleError, "duplicate rules: %s", strings.Join(names, ", ")),
	}
}

// Names returns a sorted copy of duplicate names.
func (e *DuplicateError) Names() []string {
	return slices.Clone(e.names)
}

func (e *DuplicateError) Error() string {
	return e.err.Message
}

func (e *DuplicateError) Unwrap() error {
	return e.err
}

// Warning is a non-fatal diagnostic concerning a set of rules.
type Warning struct {
	Code  int
	Names []string
}

var warningPrefixes = map[int]string{
	DuplicateRuleWarning: "duplicate rules (first definition used)",
	UnusedRuleWarning:    "unused rules",
	LeftRecursionWarning: "left-recursive rules",
}

func (w Warning) String() string {
	return warningPrefixes[w.Code] + ": " + strings.Join(w.Names, ", ")
}
