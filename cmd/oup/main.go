// Command oup reads canonical internal-form JSON IR and writes
// re-rendered surface ML source. Usage: oup <json_file> <src_file>.
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/sufu-ml/bridge/internal/diagnostics"
	"github.com/sufu-ml/bridge/internal/jsonir"
	"github.com/sufu-ml/bridge/internal/normalize"
	"github.com/sufu-ml/bridge/internal/prettyprint"
	"github.com/sufu-ml/bridge/internal/token"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: oup <json_file> <src_file>")
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2]); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func run(jsonPath, srcPath string) error {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return diagnostics.WrapError(diagnostics.PhaseCodec, token.Token{}, fmt.Errorf("reading %s: %w", jsonPath, err))
	}

	internal, err := jsonir.DecodeProgram(data)
	if err != nil {
		return err
	}
	surface := normalize.InternalToSurface(internal)
	out := prettyprint.PrintProgram(surface)

	if err := os.WriteFile(srcPath, []byte(out), 0o644); err != nil {
		return diagnostics.WrapError(diagnostics.PhaseCodec, token.Token{}, fmt.Errorf("writing %s: %w", srcPath, err))
	}

	fmt.Fprintf(os.Stderr, "wrote %s to %s\n", humanize.Bytes(uint64(len(out))), srcPath)
	return nil
}

func reportError(err error) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "\033[31merror:\033[0m %s\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "error: %s\n", err)
}
