// Command extract_tests snapshots tinyc programs into a Markdown test suite.
//
// Every .tc file matching the pattern becomes one test case whose assertion
// fences record what the front end currently produces: the tree, the
// program type and the declared symbols, or the diagnostic for a program
// that does not compile.
//
//	go run ./scripts 'examples/*.tc' > test/examples_test.md
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/tinyc-lang/tinyc/ast"
	"github.com/tinyc-lang/tinyc/parse"
	"github.com/tinyc-lang/tinyc/resolve"
	"github.com/tinyc-lang/tinyc/sexy"
)

type TestCase struct {
	Name       string
	Input      string
	SourceFile string

	AST     string
	Type    string
	Symbols string
	Error   string // set instead of the three above when compilation fails
}

type Extractor struct {
	cases []TestCase
}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) extractFromFiles(pattern string) error {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := e.visitFile(file); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to process %s: %v\n", file, err)
		}
	}

	return nil
}

func (e *Extractor) visitFile(filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	e.add(filename, strings.TrimRight(string(src), "\n"))
	return nil
}

func (e *Extractor) add(filename, input string) {
	tc := TestCase{
		Name:       e.generateTestName(filename),
		Input:      input,
		SourceFile: filename,
	}

	root, err := parse.String(input)
	if err != nil {
		tc.Error = err.Error()
		e.cases = append(e.cases, tc)
		return
	}
	tc.AST = ast.ToSExpr(root)

	res, err := resolve.Resolve(root)
	if err != nil {
		tc.Error = err.Error()
		e.cases = append(e.cases, tc)
		return
	}
	tc.Type = res.Type.String()
	tc.Symbols = res.SymbolsSExpr()
	e.cases = append(e.cases, tc)
}

// generateTestName turns "examples/loop_fact.tc" into "loop fact".
func (e *Extractor) generateTestName(filename string) string {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	var result []rune
	for _, r := range name {
		if r == '_' || r == '-' {
			r = ' '
		}
		result = append(result, unicode.ToLower(r))
	}

	return string(result)
}

func (e *Extractor) generateSexyMarkdown() string {
	if len(e.cases) == 0 {
		return "# No test cases found\n"
	}

	sort.Slice(e.cases, func(i, j int) bool {
		return e.cases[i].SourceFile < e.cases[j].SourceFile
	})

	var sb strings.Builder
	sb.WriteString("# Extracted front end tests\n\n")
	sb.WriteString("Generated from tinyc source files.\n\n")

	for _, tc := range e.cases {
		sb.WriteString(fmt.Sprintf("## Test: %s\n", tc.Name))
		writeFence(&sb, sexy.InputFence, tc.Input)
		if tc.Error != "" {
			writeFence(&sb, string(sexy.AssertionTypeCompileError), tc.Error)
			sb.WriteString("\n")
			continue
		}
		writeFence(&sb, string(sexy.AssertionTypeAST), tc.AST)
		writeFence(&sb, string(sexy.AssertionTypeTypes), tc.Type)
		writeFence(&sb, string(sexy.AssertionTypeSymbols), tc.Symbols)
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeFence(sb *strings.Builder, language, content string) {
	sb.WriteString("```" + language + "\n")
	if content != "" {
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	sb.WriteString("```\n")
}

func main() {
	pattern := "examples/*.tc"
	if len(os.Args) > 1 {
		pattern = os.Args[1]
	}

	extractor := NewExtractor()
	if err := extractor.extractFromFiles(pattern); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(extractor.generateSexyMarkdown())
}
