// Command inp reads surface ML source and writes its canonical
// internal-form JSON IR. Usage: inp <src_file> <json_file>.
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/sufu-ml/bridge/internal/diagnostics"
	"github.com/sufu-ml/bridge/internal/jsonir"
	"github.com/sufu-ml/bridge/internal/lexer"
	"github.com/sufu-ml/bridge/internal/normalize"
	"github.com/sufu-ml/bridge/internal/parser"
	"github.com/sufu-ml/bridge/internal/token"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: inp <src_file> <json_file>")
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2]); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func run(srcPath, jsonPath string) error {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return diagnostics.WrapError(diagnostics.PhaseLexer, token.Token{}, fmt.Errorf("reading %s: %w", srcPath, err))
	}

	toks, err := lexer.Tokenize(string(src))
	if err != nil {
		return err
	}
	prog, err := parser.ParseProgram(toks)
	if err != nil {
		return err
	}
	internal := normalize.SurfaceToInternal(prog)

	out, err := jsonir.EncodeProgram(internal)
	if err != nil {
		return err
	}
	if err := os.WriteFile(jsonPath, out, 0o644); err != nil {
		return diagnostics.WrapError(diagnostics.PhaseCodec, token.Token{}, fmt.Errorf("writing %s: %w", jsonPath, err))
	}

	fmt.Fprintf(os.Stderr, "wrote %s to %s\n", humanize.Bytes(uint64(len(out))), jsonPath)
	return nil
}

func reportError(err error) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "\033[31merror:\033[0m %s\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "error: %s\n", err)
}
