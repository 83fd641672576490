package diagnostics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/funvibe/pokerscript/internal/token"
)

// ErrorCode identifies a class of semantic error.
type ErrorCode string

const (
	ErrA001 ErrorCode = "A001" // undeclared identifier
	ErrA002 ErrorCode = "A002" // duplicate identifier
	ErrA003 ErrorCode = "A003" // type mismatch
	ErrA004 ErrorCode = "A004" // arity mismatch
	ErrA005 ErrorCode = "A005" // control construct outside its context
	ErrA006 ErrorCode = "A006" // write to a read-only binding
	ErrA007 ErrorCode = "A007" // tree violates the input contract
)

// Readable aliases for the codes above.
const (
	UndeclaredIdentifier = ErrA001
	DuplicateIdentifier  = ErrA002
	TypeMismatch         = ErrA003
	ArityMismatch        = ErrA004
	ScopeViolation       = ErrA005
	ReadOnlyAssignment   = ErrA006
	MalformedTree        = ErrA007
)

var kindNames = map[ErrorCode]string{
	ErrA001: "UndeclaredIdentifier",
	ErrA002: "DuplicateIdentifier",
	ErrA003: "TypeMismatch",
	ErrA004: "ArityMismatch",
	ErrA005: "ScopeViolation",
	ErrA006: "ReadOnlyAssignment",
	ErrA007: "MalformedTree",
}

// Kind returns the taxonomy name of the code, e.g. "TypeMismatch".
func (c ErrorCode) Kind() string {
	if name, ok := kindNames[c]; ok {
		return name
	}
	return string(c)
}

// Fatal reports whether the code signals a broken input rather than a
// program the user can fix.
func (c ErrorCode) Fatal() bool {
	return c == ErrA007
}

// DiagnosticError is a single semantic diagnostic.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

// NewError builds a diagnostic. A non-empty format is applied to args.
func NewError(code ErrorCode, tok token.Token, format string, args ...any) *DiagnosticError {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &DiagnosticError{Code: code, Token: tok, Message: msg}
}

func (e *DiagnosticError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(":")
		if !e.Token.HasPosition() {
			b.WriteString(" ")
		}
	}
	if pos := e.Token.Position(); pos != "" {
		b.WriteString(pos)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Is matches another *DiagnosticError carrying the same code, so callers can
// write errors.Is(err, &DiagnosticError{Code: ErrA002}).
func (e *DiagnosticError) Is(target error) bool {
	t, ok := target.(*DiagnosticError)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

// CodeOf extracts the code of a diagnostic wrapped anywhere in err.
func CodeOf(err error) (ErrorCode, bool) {
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de.Code, true
	}
	return "", false
}
