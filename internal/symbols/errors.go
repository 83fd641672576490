package symbols

import "fmt"

// DuplicateError is returned by Declare when the name is already visible.
type DuplicateError struct {
	Name     string
	Existing Entity
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("Identifier %s already declared", e.Name)
}

// NotFoundError is returned by Resolve when no scope in the chain has the name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Identifier %s not declared", e.Name)
}
