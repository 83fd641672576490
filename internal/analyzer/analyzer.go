package analyzer

import (
	"github.com/funvibe/pokerscript/internal/ast"
	"github.com/funvibe/pokerscript/internal/diagnostics"
	"github.com/funvibe/pokerscript/internal/prelude"
	"github.com/funvibe/pokerscript/internal/symbols"
	"github.com/funvibe/pokerscript/internal/token"
)

// Analyzer performs semantic analysis on the AST.
type Analyzer struct {
	prelude *prelude.Prelude
	file    string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithPrelude replaces the standard prelude.
func WithPrelude(p *prelude.Prelude) Option {
	return func(a *Analyzer) { a.prelude = p }
}

// WithFile names the file diagnostics are reported against when the
// program does not carry one.
func WithFile(name string) Option {
	return func(a *Analyzer) { a.file = name }
}

// New creates an Analyzer using the standard prelude unless overridden.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	if a.prelude == nil {
		a.prelude = prelude.Default()
	}
	return a
}

// Analyze decorates program in place: every expression gets its type and
// every identifier its entity. Analysis stops at the first violation, which
// is returned as a *diagnostics.DiagnosticError.
func Analyze(program *ast.Program) (*ast.Program, error) {
	return New().Analyze(program)
}

// Analyze decorates program in place and returns it.
func (a *Analyzer) Analyze(program *ast.Program) (result *ast.Program, err error) {
	file := a.file
	if program != nil && program.File != "" {
		file = program.File
	}
	if program == nil {
		e := diagnostics.NewError(diagnostics.MalformedTree, token.Token{}, "Program expected")
		e.File = file
		return nil, e
	}

	root := symbols.NewRootScope()
	if err := a.prelude.Populate(root); err != nil {
		return nil, err
	}

	w := &walker{symbolTable: root.Child(), currentFile: file}
	defer func() {
		if r := recover(); r != nil {
			de, ok := r.(*diagnostics.DiagnosticError)
			if !ok {
				panic(r)
			}
			result, err = nil, de
		}
	}()
	program.Accept(w)
	return program, nil
}

// walker carries the analysis state through one traversal. Every Visit
// method either decorates its node or panics with a diagnostic.
type walker struct {
	symbolTable *symbols.Scope
	currentFile string
	declared    int // declarations so far, numbering entity IDs
}

var _ ast.Visitor = (*walker)(nil)

// fail aborts the walk with a diagnostic.
func (w *walker) fail(code diagnostics.ErrorCode, tok token.Token, format string, args ...any) {
	err := diagnostics.NewError(code, tok, format, args...)
	err.File = w.currentFile
	panic(err)
}

// check fails unless cond holds.
func (w *walker) check(cond bool, code diagnostics.ErrorCode, tok token.Token, format string, args ...any) {
	if !cond {
		w.fail(code, tok, format, args...)
	}
}

// enter makes scope current and returns a func restoring the previous one.
func (w *walker) enter(scope *symbols.Scope) func() {
	outer := w.symbolTable
	w.symbolTable = scope
	return func() { w.symbolTable = outer }
}
