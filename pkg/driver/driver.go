// Package driver implements the thin I/O shell around the core
// translator: collecting .vm files from a file-or-directory input,
// parsing and generating each as its own class, and concatenating the
// results (optionally prefixed with the bootstrap preamble) into one
// output. None of this package's logic is part of the lowering core;
// it exists to give pkg/lexer, pkg/parser, and pkg/codegen a file on
// disk to read and a file on disk to write.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jacklang/vm2asm/pkg/codegen"
	"github.com/jacklang/vm2asm/pkg/hackasm"
	"github.com/jacklang/vm2asm/pkg/parser"
	"github.com/jacklang/vm2asm/pkg/vmil"
)

const vmExt = ".vm"
const asmExt = ".asm"

// Options controls driver-level behavior that has no bearing on the
// translation itself.
type Options struct {
	// NoBoot suppresses the bootstrap preamble (--no-boot).
	NoBoot bool
}

// Translate collects every .vm file reachable from inputPath, runs
// each through parser.ParseProgram and codegen.GenerateClass, and
// returns the concatenated assembly text. Classes are processed in
// sorted file-name order so output is deterministic; any failure in
// any file halts the whole run and is returned wrapped with that
// file's path.
func Translate(inputPath string, opts Options) (string, error) {
	files, err := CollectVMFiles(inputPath)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%s: no .vm files found", inputPath)
	}

	var sb strings.Builder
	printer := hackasm.NewPrinter(&sb)

	if !opts.NoBoot {
		if err := printer.PrintAll(codegen.Bootstrap()); err != nil {
			return "", fmt.Errorf("bootstrap: %w", err)
		}
	}

	for _, f := range files {
		instrs, err := translateFile(f)
		if err != nil {
			return "", fmt.Errorf("%s: %w", f, err)
		}
		if err := printer.PrintAll(instrs); err != nil {
			return "", fmt.Errorf("%s: %w", f, err)
		}
	}

	return sb.String(), nil
}

func translateFile(path string) ([]hackasm.Instruction, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	prog, err := parser.ParseProgram(string(src))
	if err != nil {
		return nil, err
	}

	class := vmil.Class{Name: ClassName(path), Functions: prog}
	return codegen.GenerateClass(class)
}

// CollectVMFiles returns every .vm file under inputPath: itself, if
// it names a .vm file directly, or every immediate .vm entry of the
// directory it names, sorted by name. It does not recurse into
// subdirectories — one translation unit is one directory's worth of
// classes, matching the Nand2Tetris project layout this grammar
// targets.
func CollectVMFiles(inputPath string) ([]string, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !strings.EqualFold(filepath.Ext(inputPath), vmExt) {
			return nil, fmt.Errorf("%s: not a .vm file", inputPath)
		}
		return []string{inputPath}, nil
	}

	entries, err := os.ReadDir(inputPath)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), vmExt) {
			continue
		}
		files = append(files, filepath.Join(inputPath, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ClassName derives a class's static-variable scope from its source
// file's stem: the file name with its .vm extension removed, dots and
// all (Foo.Bar.vm -> Foo.Bar).
func ClassName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputPath infers the destination file for an input path per the
// CLI's path-inference rule: a directory named Foo produces Foo/Foo.asm;
// a file Foo.vm produces Foo.asm alongside it.
func OutputPath(inputPath string) (string, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		clean := filepath.Clean(inputPath)
		return filepath.Join(clean, filepath.Base(clean)+asmExt), nil
	}
	if !strings.EqualFold(filepath.Ext(inputPath), vmExt) {
		return "", fmt.Errorf("%s: not a .vm file", inputPath)
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + asmExt, nil
}
