// Package test contains assertion helpers shared by package tests.
package test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/ebnf"
)

// ExpectErrorCode fails the test unless e is or wraps *ebnf.Error with the expected code.
func ExpectErrorCode(t *testing.T, expected int, e error) {
	t.Helper()

	require.Error(t, e, "expecting error code %d", expected)

	var ee *ebnf.Error
	require.True(t, errors.As(e, &ee), "expecting *ebnf.Error with code %d, got %T: %v", expected, e, e)
	require.Equal(t, expected, ee.Code, "unexpected error code, message: %s", ee.Message)
}

// ExpectErrorPos fails the test unless e is *ebnf.Error pointing to the expected line and column.
func ExpectErrorPos(t *testing.T, line, col int, e error) {
	t.Helper()

	var ee *ebnf.Error
	require.True(t, errors.As(e, &ee), "expecting *ebnf.Error, got %v", e)
	require.Equal(t, line, ee.Line, "line, message: %s", ee.Message)
	require.Equal(t, col, ee.Col, "col, message: %s", ee.Message)
}
