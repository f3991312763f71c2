package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/tinyc-lang/tinyc/ast"
	"github.com/tinyc-lang/tinyc/sexy"
)

func TestSexyAllTests(t *testing.T) {
	// Find all test files in the test/ directory
	testFiles, err := filepath.Glob("test/*_test.md")
	be.Err(t, err, nil)
	be.True(t, len(testFiles) > 0)

	for _, testFile := range testFiles {
		fileName := filepath.Base(testFile)
		testName := strings.TrimSuffix(fileName, ".md")

		t.Run(testName, func(t *testing.T) {
			content, err := os.ReadFile(testFile)
			be.Err(t, err, nil)

			testCases, err := sexy.ExtractTestCases(string(content))
			be.Err(t, err, nil)

			for _, tc := range testCases {
				t.Run(tc.Name, func(t *testing.T) {
					runTestCase(t, tc)
				})
			}
		})
	}
}

func runTestCase(t *testing.T, tc sexy.TestCase) {
	root, res, err := compile(tc.Input)
	parsed := root != nil

	for i, assertion := range tc.Assertions {
		t.Run("assertion_"+string(rune('a'+i)), func(t *testing.T) {
			if assertion.Type == sexy.AssertionTypeCompileError {
				if err == nil {
					t.Fatalf("line %d: expected error %q, but compiled cleanly", tc.Line, assertion.Content)
				}
				be.Err(t, err, assertion.Content)
				return
			}

			// Tree assertions only need a successful parse, so parser suites
			// may use names they never declare.
			if err != nil && !(parsed && assertion.Type == sexy.AssertionTypeAST) {
				t.Fatalf("line %d: unexpected error: %v", tc.Line, err)
			}

			var actual string
			switch assertion.Type {
			case sexy.AssertionTypeAST:
				actual = ast.ToSExpr(root)
			case sexy.AssertionTypeTypes:
				actual = res.Type.String()
			case sexy.AssertionTypeSymbols:
				actual = res.SymbolsSExpr()
			default:
				t.Fatalf("unknown assertion type: %s", assertion.Type)
			}
			assertPatternMatch(t, tc, assertion.Pattern, actual)
		})
	}
}

func assertPatternMatch(t *testing.T, tc sexy.TestCase, pattern *sexy.Node, actual string) {
	t.Helper()
	node, err := sexy.Parse(actual)
	if err != nil {
		t.Fatalf("line %d: could not reparse %q: %v", tc.Line, actual, err)
	}
	if err := sexy.Match(pattern, node); err != nil {
		t.Errorf("line %d: %v", tc.Line, err)
	}
}
