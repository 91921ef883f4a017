package ast

import (
	"github.com/ava12/ebnf"
)

// Error codes used by node constructors:
const (
	ArityError = ebnf.TreeErrors + iota
	NilChildError
	EmptyNameError
	RangeBoundError
	ReversedRangeError
)

func arityError(kind Kind, got int) *ebnf.Error {
	return ebnf.FormatError(ArityError, "%s cannot have %d children", kind, got)
}

func nilChildError(kind Kind, index int) *ebnf.Error {
	return ebnf.FormatError(NilChildError, "%s child #%d is nil", kind, index)
}

func emptyNameError() *ebnf.Error {
	return ebnf.FormatError(EmptyNameError, "empty identifier")
}

func rangeBoundError(bound string) *ebnf.Error {
	return ebnf.FormatError(RangeBoundError, "range bound %q must be a single character", bound)
}

func reversedRangeError(begin, end string) *ebnf.Error {
	return ebnf.FormatError(ReversedRangeError, "range %q..%q has lower bound greater than upper bound", begin, end)
}
