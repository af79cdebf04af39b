// Command vm2asm translates VM-IL source (.vm files, or a directory
// of them) into HACK-ASM text.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jacklang/vm2asm/pkg/driver"
	"github.com/jacklang/vm2asm/pkg/lexer"
	"github.com/jacklang/vm2asm/pkg/parser"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	outputPath string
	noBoot     bool
	dumpTokens bool
	dumpIR     bool
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vm2asm [path]",
		Short:         "vm2asm translates Nand2Tetris VM-IL into HACK-ASM",
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if dumpTokens {
				return doDumpTokens(path, out, errOut)
			}
			if dumpIR {
				return doDumpIR(path, out, errOut)
			}
			return doTranslate(path, out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default inferred from input path)")
	rootCmd.Flags().BoolVar(&noBoot, "no-boot", false, "suppress the bootstrap preamble")
	rootCmd.Flags().BoolVar(&dumpTokens, "dump-tokens", false, "lex the input and print its token stream, then stop")
	rootCmd.Flags().BoolVar(&dumpIR, "dump-ir", false, "parse the input and print its instruction IR, then stop")

	return rootCmd
}

func doTranslate(path string, out, errOut io.Writer) error {
	asm, err := driver.Translate(path, driver.Options{NoBoot: noBoot})
	if err != nil {
		fmt.Fprintf(errOut, "vm2asm: %v\n", err)
		return err
	}

	dest := outputPath
	if dest == "" {
		dest, err = driver.OutputPath(path)
		if err != nil {
			fmt.Fprintf(errOut, "vm2asm: %v\n", err)
			return err
		}
	}

	if err := os.WriteFile(dest, []byte(asm), 0o644); err != nil {
		fmt.Fprintf(errOut, "vm2asm: error writing %s: %v\n", dest, err)
		return err
	}
	fmt.Fprintf(out, "vm2asm: wrote %s\n", dest)
	return nil
}

// doDumpTokens lexes every .vm file reachable from path and prints
// its token stream; it never writes an output file.
func doDumpTokens(path string, out, errOut io.Writer) error {
	files, err := driver.CollectVMFiles(path)
	if err != nil {
		fmt.Fprintf(errOut, "vm2asm: %v\n", err)
		return err
	}
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			fmt.Fprintf(errOut, "vm2asm: %v\n", err)
			return err
		}
		toks, err := lexer.Tokenize(string(src))
		if err != nil {
			fmt.Fprintf(errOut, "vm2asm: %s: %v\n", f, err)
			return err
		}
		fmt.Fprintf(out, "-- %s --\n", f)
		for _, tok := range toks {
			fmt.Fprintf(out, "%d:%d %s %q\n", tok.Line, tok.Column, tok.Type, tok.Literal)
		}
	}
	return nil
}

// doDumpIR parses every .vm file reachable from path and prints its
// Function/Instr IR; it never writes an output file.
func doDumpIR(path string, out, errOut io.Writer) error {
	files, err := driver.CollectVMFiles(path)
	if err != nil {
		fmt.Fprintf(errOut, "vm2asm: %v\n", err)
		return err
	}
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			fmt.Fprintf(errOut, "vm2asm: %v\n", err)
			return err
		}
		prog, err := parser.ParseProgram(string(src))
		if err != nil {
			fmt.Fprintf(errOut, "vm2asm: %s: %v\n", f, err)
			return err
		}
		fmt.Fprintf(out, "-- %s --\n", f)
		for _, fn := range prog {
			fmt.Fprintf(out, "function %s %d\n", fn.Name, fn.Locals)
			for _, instr := range fn.Body {
				fmt.Fprintf(out, "  %#v\n", instr)
			}
		}
	}
	return nil
}
