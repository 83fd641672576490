package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ColorMode selects when diagnostics are rendered with ANSI colours.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiDim   = "\x1b[2m"
)

// UseColor resolves mode against the given output file.
// Auto mode honours NO_COLOR and TERM=dumb and requires a terminal.
func UseColor(mode ColorMode, f *os.File) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render writes err to w in the CLI format:
//
//	error[A003] TypeMismatch: Line 2, col 4: Cannot assign a playingOnTilt to a chip
//
// Errors that are not diagnostics are written as plain "error: ..." lines.
func Render(w io.Writer, err error, color bool) {
	de, ok := err.(*DiagnosticError)
	if !ok {
		if color {
			fmt.Fprintf(w, "%s%serror%s: %v\n", ansiBold, ansiRed, ansiReset, err)
			return
		}
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	if color {
		fmt.Fprintf(w, "%s%serror[%s]%s %s%s%s: %s\n",
			ansiBold, ansiRed, de.Code, ansiReset,
			ansiDim, de.Code.Kind(), ansiReset, de.Error())
		return
	}
	fmt.Fprintf(w, "error[%s] %s: %s\n", de.Code, de.Code.Kind(), de.Error())
}
