package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/raymyers/sysyc/pkg/ast"
	"github.com/raymyers/sysyc/pkg/config"
	"github.com/raymyers/sysyc/pkg/koopa"
	"github.com/raymyers/sysyc/pkg/parser"
	"golang.org/x/sync/errgroup"
)

// unit is one compiled input file
type unit struct {
	input string
	ast   *ast.CompUnit
}

// sourceError ties a failure to the input file that caused it
type sourceError struct {
	filename string
	parse    *parser.ParseError // set when parsing failed
	err      error
}

func (e *sourceError) Error() string {
	if e.parse != nil {
		return fmt.Sprintf("parsing %s failed with %d errors", e.filename, len(e.parse.Errors))
	}
	return fmt.Sprintf("%s: %v", e.filename, e.err)
}

func (e *sourceError) Unwrap() error {
	return e.err
}

// syncWriter serializes writes from concurrent compile jobs
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(b)
}

// compileFile reads and parses a single source file
func compileFile(filename string, errOut io.Writer) (unit, error) {
	if verbose {
		fmt.Fprintf(errOut, "sysyc: compiling %s\n", filename)
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return unit{}, &sourceError{filename: filename, err: fmt.Errorf("error reading file: %w", err)}
	}

	cu, err := parser.Parse(string(content))
	if err != nil {
		serr := &sourceError{filename: filename, err: err}
		errors.As(err, &serr.parse)
		return unit{}, serr
	}

	return unit{input: filename, ast: cu}, nil
}

// compileFiles compiles every input concurrently. Results keep argument
// order; the first failure stops jobs that have not started yet.
func compileFiles(ctx context.Context, inputs []string, errOut io.Writer) ([]unit, error) {
	units := make([]unit, len(inputs))
	progress := &syncWriter{w: errOut}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			u, err := compileFile(input, progress)
			if err != nil {
				return err
			}
			units[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

// emitUnits writes the IR of each unit to its destination:
// the -o file, stdout for a single input, or a config-derived path.
func emitUnits(units []unit, cfg config.Config, out io.Writer) error {
	var paths []string
	if outputFile == "" && len(units) > 1 {
		var err error
		if paths, err = outputPaths(units, cfg); err != nil {
			return err
		}
	}
	for i, u := range units {
		if cfg.Diagnostics.DumpAST {
			if err := ast.NewPrinter(out).PrintCompUnit(u.ast); err != nil {
				return fmt.Errorf("error writing AST: %w", err)
			}
		}

		switch {
		case outputFile != "":
			if err := writeIR(outputFile, u.ast); err != nil {
				return err
			}
		case len(units) == 1:
			if err := koopa.NewPrinter(out).PrintCompUnit(u.ast); err != nil {
				return err
			}
		default:
			if err := writeIR(paths[i], u.ast); err != nil {
				return err
			}
		}
	}
	return nil
}

// outputPaths resolves the IR path of every unit before anything is written,
// failing when two inputs map to the same file.
func outputPaths(units []unit, cfg config.Config) ([]string, error) {
	paths := make([]string, len(units))
	owners := make(map[string]string, len(units))
	for i, u := range units {
		path := cfg.OutputPath(u.input)
		key := filepath.Clean(path)
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}
		if prev, ok := owners[key]; ok {
			return nil, fmt.Errorf("%s and %s both write %s", prev, u.input, path)
		}
		owners[key] = u.input
		paths[i] = path
	}
	return paths, nil
}

// writeIR creates path (and its directory) and writes the IR of cu to it
func writeIR(path string, cu *ast.CompUnit) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating %s: %w", dir, err)
		}
	}
	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	if err := koopa.NewPrinter(outFile).PrintCompUnit(cu); err != nil {
		outFile.Close()
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return outFile.Close()
}
