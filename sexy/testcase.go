package sexy

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputFence is the language tag of the fence holding a test's program.
const InputFence = "tinyc"

// AssertionType represents the type of assertion code fence in a test
type AssertionType string

const (
	AssertionTypeAST          AssertionType = "ast"           // s-expression pattern of the tree
	AssertionTypeTypes        AssertionType = "types"         // type of the program
	AssertionTypeSymbols      AssertionType = "symbols"       // declared symbols, in order
	AssertionTypeCompileError AssertionType = "compile-error" // diagnostic text
)

func isAssertionFence(language string) bool {
	switch AssertionType(language) {
	case AssertionTypeAST, AssertionTypeTypes, AssertionTypeSymbols, AssertionTypeCompileError:
		return true
	}
	return false
}

// Assertion represents a single assertion in a test
type Assertion struct {
	Type    AssertionType
	Content string
	// Pattern is Content parsed; nil for compile-error.
	Pattern *Node
}

// TestCase represents a complete test case extracted from Markdown
type TestCase struct {
	Name       string // heading text after "Test: "
	Line       int    // line of the heading
	Input      string
	Assertions []Assertion
}

// ExtractTestCases parses a Markdown document and extracts all test cases.
// A test starts at a heading "Test: name" and holds one tinyc fence plus at
// least one assertion fence.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	source := []byte(markdownContent)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var testCases []TestCase
	var current *TestCase
	hasInput := false

	flush := func() error {
		if current == nil {
			return nil
		}
		if !hasInput {
			return fmt.Errorf("line %d: test '%s' has no input fence", current.Line, current.Name)
		}
		if len(current.Assertions) == 0 {
			return fmt.Errorf("line %d: test '%s' has no assertion fences", current.Line, current.Name)
		}
		testCases = append(testCases, *current)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := extractTextFromNode(n, source)
			name, ok := strings.CutPrefix(heading, "Test: ")
			if !ok {
				return ast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return ast.WalkStop, err
			}
			current = &TestCase{Name: name, Line: getLineNumber(n, source)}
			hasInput = false

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			content := extractCodeBlockContent(n, source)
			lineNum := getLineNumber(n, source)

			if language == "" {
				// Plain code blocks are prose.
				return ast.WalkContinue, nil
			}
			if language != InputFence && !isAssertionFence(language) {
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s'", lineNum, language)
			}
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", lineNum, language)
			}

			if language == InputFence {
				if hasInput {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences found in test '%s'", lineNum, current.Name)
				}
				current.Input = strings.TrimRight(content, "\n")
				hasInput = true
				return ast.WalkContinue, nil
			}

			assertion := Assertion{
				Type:    AssertionType(language),
				Content: strings.TrimSpace(content),
			}
			if assertion.Type != AssertionTypeCompileError {
				pattern, err := Parse(assertion.Content)
				if err != nil {
					return ast.WalkStop, fmt.Errorf("line %d: failed to parse assertion in test '%s': %w", lineNum, current.Name, err)
				}
				assertion.Pattern = pattern
			}
			current.Assertions = append(current.Assertions, assertion)
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return testCases, nil
}

// extractTextFromNode extracts plain text content from a markdown node
func extractTextFromNode(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func extractCodeBlockContent(codeBlock *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := codeBlock.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

// getLineNumber returns the 1-based line of node in source.
func getLineNumber(node ast.Node, source []byte) int {
	var start int
	switch {
	case node.Lines().Len() > 0:
		start = node.Lines().At(0).Start
	case node.HasChildren():
		if t, ok := node.FirstChild().(*ast.Text); ok {
			start = t.Segment.Start
		}
	}
	return 1 + bytes.Count(source[:min(start, len(source))], []byte("\n"))
}
