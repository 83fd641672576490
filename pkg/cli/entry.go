// Package cli implements the pokerscript command line.
//
//	pokerscript check [-dump] [-watch] [-color mode] [-prelude file] tree...
//	pokerscript index [-db file] [-prelude file] tree...
//	pokerscript refs  [-db file] name
//	pokerscript print tree...
//	pokerscript version
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/funvibe/pokerscript/internal/analyzer"
	"github.com/funvibe/pokerscript/internal/config"
	"github.com/funvibe/pokerscript/internal/diagnostics"
	"github.com/funvibe/pokerscript/internal/index"
	"github.com/funvibe/pokerscript/internal/pipeline"
	"github.com/funvibe/pokerscript/internal/prelude"
	"github.com/funvibe/pokerscript/internal/prettyprinter"
)

// Exit statuses.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `usage: pokerscript <command> [flags] [tree files]

Commands:
  check    analyze tree files and report the first error of each
  index    analyze tree files and record their symbols in an index database
  refs     list the definitions and uses of a name recorded in an index
  print    print tree files as Pokerscript source
  version  print the version

Run 'pokerscript <command> -h' for the flags of a command.
`

// Run executes the command line args (without the program name) and
// returns the process exit status.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "check":
		return handleCheck(ctx, rest, stdout, stderr)
	case "index":
		return handleIndex(ctx, rest, stdout, stderr)
	case "refs":
		return handleRefs(ctx, rest, stdout, stderr)
	case "print":
		return handlePrint(rest, stdout, stderr)
	case "version", "-v", "-version", "--version":
		fmt.Fprintln(stdout, "pokerscript "+config.Version)
		return exitOK
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return exitOK
	}
	fmt.Fprintf(stderr, "pokerscript: unknown command %q\n", cmd)
	fmt.Fprint(stderr, usage)
	return exitUsage
}

// settings is what a command needs from the project file and the common
// flags.
type settings struct {
	project *config.Project
	prelude *prelude.Prelude
	color   bool
}

type commonFlags struct {
	config  string
	prelude string
	color   string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.config, "config", "", "project file (default: nearest "+config.ProjectFileName+")")
	fs.StringVar(&c.prelude, "prelude", "", "custom prelude file")
	fs.StringVar(&c.color, "color", "", "colour diagnostics: auto, always or never")
}

// load resolves the project file and the flags into settings. Flags win
// over the project file.
func (c *commonFlags) load(stderr io.Writer) (*settings, error) {
	if c.color != "" && !config.IsColorMode(c.color) {
		return nil, fmt.Errorf("invalid -color %q: must be auto, always or never", c.color)
	}

	path := c.config
	if path == "" {
		dir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working directory: %w", err)
		}
		if path, err = config.FindConfig(dir); err != nil {
			return nil, err
		}
	}

	s := &settings{}
	if path != "" {
		project, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		s.project = project
	}

	mode := c.color
	if mode == "" && s.project != nil {
		mode = s.project.Color
	}
	if mode == "" {
		mode = string(diagnostics.ColorAuto)
	}
	f, _ := stderr.(*os.File)
	s.color = diagnostics.UseColor(diagnostics.ColorMode(mode), f)

	preludePath := c.prelude
	if preludePath == "" && s.project != nil {
		preludePath = s.project.PreludePath()
	}
	if preludePath != "" {
		p, err := prelude.Load(preludePath)
		if err != nil {
			return nil, err
		}
		s.prelude = p
	}
	return s, nil
}

func newFlagSet(name, args string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: pokerscript %s [flags] %s\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags parses args and requires at least one positional argument.
// A non-negative status means the command should return it right away.
func parseFlags(fs *flag.FlagSet, args []string) int {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	return -1
}

// analyze loads and analyzes one tree file, running extra stages after the
// analyzer.
func (s *settings) analyze(ctx context.Context, path string, extra ...pipeline.Processor) *pipeline.PipelineContext {
	stages := append([]pipeline.Processor{&pipeline.TreeLoader{}, &analyzer.SemanticAnalyzerProcessor{}}, extra...)
	pc := pipeline.NewPipelineContext(ctx, path)
	pc.Prelude = s.prelude
	return pipeline.New(stages...).Run(pc)
}

func handleCheck(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("check", "tree...", stderr)
	var common commonFlags
	common.register(fs)
	dump := fs.Bool("dump", false, "print the decorated tree of each valid file")
	watch := fs.Bool("watch", false, "check again whenever a file is written")
	if status := parseFlags(fs, args); status >= 0 {
		return status
	}

	s, err := common.load(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "pokerscript: %v\n", err)
		return exitUsage
	}

	check := func(path string) int {
		pc := s.analyze(ctx, path)
		if pc.Err != nil {
			diagnostics.Render(stderr, pc.Err, s.color)
			return exitError
		}
		if *dump {
			fmt.Fprintln(stdout, prettyprinter.Dump(pc.AstRoot))
		} else {
			fmt.Fprintf(stdout, "%s: ok\n", path)
		}
		return exitOK
	}

	status := exitOK
	for _, path := range fs.Args() {
		if check(path) != exitOK {
			status = exitError
		}
	}
	if !*watch {
		return status
	}

	w, err := newTreeWatcher(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "pokerscript: watch: %v\n", err)
		return exitError
	}
	defer w.Close()
	log.Printf("watching %d file(s), press Ctrl-C to stop", len(fs.Args()))
	if err := w.Run(ctx, func(path string) {
		log.Printf("%s changed", path)
		check(path)
	}); err != nil {
		fmt.Fprintf(stderr, "pokerscript: watch: %v\n", err)
		return exitError
	}
	return status
}

func handleIndex(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("index", "tree...", stderr)
	var common commonFlags
	common.register(fs)
	db := fs.String("db", "", "index database (default: from the project file, or "+config.DefaultIndexFile+")")
	if status := parseFlags(fs, args); status >= 0 {
		return status
	}

	s, err := common.load(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "pokerscript: %v\n", err)
		return exitUsage
	}

	store, err := index.Open(ctx, s.indexPath(*db))
	if err != nil {
		fmt.Fprintf(stderr, "pokerscript: %v\n", err)
		return exitError
	}
	defer store.Close()

	status := exitOK
	for _, path := range fs.Args() {
		pc := s.analyze(ctx, path, &index.Processor{Store: store})
		if pc.Err != nil {
			diagnostics.Render(stderr, pc.Err, s.color)
			status = exitError
		}
	}
	return status
}

func handleRefs(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("refs", "name...", stderr)
	var common commonFlags
	common.register(fs)
	db := fs.String("db", "", "index database (default: from the project file, or "+config.DefaultIndexFile+")")
	if status := parseFlags(fs, args); status >= 0 {
		return status
	}

	s, err := common.load(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "pokerscript: %v\n", err)
		return exitUsage
	}

	path := s.indexPath(*db)
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(stderr, "pokerscript: no index at %s (run pokerscript index first)\n", path)
		return exitError
	}
	store, err := index.Open(ctx, path)
	if err != nil {
		fmt.Fprintf(stderr, "pokerscript: %v\n", err)
		return exitError
	}
	defer store.Close()

	for _, name := range fs.Args() {
		defs, err := store.Definitions(ctx, name)
		if err != nil {
			fmt.Fprintf(stderr, "pokerscript: %v\n", err)
			return exitError
		}
		refs, err := store.References(ctx, name)
		if err != nil {
			fmt.Fprintf(stderr, "pokerscript: %v\n", err)
			return exitError
		}
		for _, d := range defs {
			fmt.Fprintf(stdout, "%s %s %s: %s\n", location(d.File, d.Line, d.Column), d.Kind, d.Name, d.Type)
		}
		for _, r := range refs {
			fmt.Fprintf(stdout, "%s use of %s %s\n", location(r.File, r.Line, r.Column), r.Kind, r.Name)
		}
	}
	return exitOK
}

func location(file string, line, col int) string {
	if file == index.PreludeFile {
		return "<prelude>"
	}
	return fmt.Sprintf("%s:%d:%d", file, line, col)
}

func (s *settings) indexPath(flagValue string) string {
	switch {
	case flagValue != "":
		return flagValue
	case s.project != nil:
		return s.project.IndexPath()
	}
	return config.DefaultIndexFile
}

func handlePrint(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("print", "tree...", stderr)
	if status := parseFlags(fs, args); status >= 0 {
		return status
	}

	status := exitOK
	for _, path := range fs.Args() {
		pc := (&pipeline.TreeLoader{}).Process(pipeline.NewPipelineContext(context.Background(), path))
		if pc.Err != nil {
			diagnostics.Render(stderr, pc.Err, false)
			status = exitError
			continue
		}
		fmt.Fprint(stdout, prettyprinter.Print(pc.AstRoot))
	}
	return status
}
