package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tinyc-lang/tinyc/ast"
	"github.com/tinyc-lang/tinyc/lex"
	"github.com/tinyc-lang/tinyc/parse"
	"github.com/tinyc-lang/tinyc/resolve"
	"github.com/tinyc-lang/tinyc/token"
)

func showUsage() {
	fmt.Fprintf(os.Stderr, `tinyc - A front end for a small C-like language

Usage:
    tinyc <command> [arguments]

Commands:
    tokens <file>   Print the token stream of a .tc file
    parse <file>    Parse a .tc file and print its tree
    check <file>    Parse and resolve a .tc file
    eval <code>     Check inline tinyc code and print its type
    repl            Start an interactive session
    help            Show this help message

Examples:
    tinyc tokens examples/fact.tc
    tinyc parse -tree examples/fact.tc
    tinyc check -v examples/fact.tc
    tinyc eval 'int x = 1; x + 2;'

Use "tinyc <command> -h" for more information about a command.
`)
}

func tokensCommand(args []string) {
	fs := flag.NewFlagSet("tokens", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tinyc tokens <file>\n")
		fmt.Fprintf(os.Stderr, "Print the token stream of a .tc file, one token per line\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	code := readSource(fs.Arg(0))
	if err := writeTokens(os.Stdout, code); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", fs.Arg(0), err)
		os.Exit(1)
	}
}

func parseCommand(args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	tree := fs.Bool("tree", false, "Draw the tree instead of printing an s-expression")
	output := fs.String("o", "", "Output file path (default: stdout)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tinyc parse [-tree] [-o output] <file>\n")
		fmt.Fprintf(os.Stderr, "Parse a .tc file and print its tree\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)
	root, err := parse.String(readSource(filename))
	if err != nil {
		fmt.Printf("Parsing errors in %s:\n%v\n", filename, err)
		os.Exit(1)
	}

	if *output == "" {
		writeTree(os.Stdout, root, *tree)
		return
	}

	var buf bytes.Buffer
	writeTree(&buf, root, *tree)
	if err := os.WriteFile(*output, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file %s: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", *output, buf.Len())
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show the tree, program type and symbols")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tinyc check [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Parse and resolve a .tc file\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)

	if *verbose {
		fmt.Printf("Checking %s...\n", filename)
	}

	if err := check(os.Stdout, filename, readSource(filename), *verbose); err != nil {
		fmt.Printf("%s: %v\n", filename, err)
		os.Exit(1)
	}
}

func evalCommand(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show the tree and symbols as well")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tinyc eval [-v] <code>\n")
		fmt.Fprintf(os.Stderr, "Check inline tinyc code and print its type\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one code argument\n")
		fs.Usage()
		os.Exit(1)
	}

	if err := eval(os.Stdout, fs.Arg(0), *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// compile parses and resolves code. A parse error leaves root nil.
func compile(code string) (ast.Node, *resolve.Result, error) {
	root, err := parse.String(code)
	if err != nil {
		return nil, nil, err
	}
	res, err := resolve.Resolve(root)
	return root, res, err
}

// check reports on a whole file: a one-line verdict, and with verbose the
// tree, type and symbols as well.
func check(w io.Writer, filename, code string, verbose bool) error {
	root, res, err := compile(code)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: no errors found\n", filename)

	if verbose {
		writeResult(w, root, res)
	}
	return nil
}

// eval prints the type of code.
func eval(w io.Writer, code string, verbose bool) error {
	root, res, err := compile(code)
	if err != nil {
		return err
	}
	if verbose {
		writeResult(w, root, res)
		return nil
	}
	fmt.Fprintln(w, res.Type)
	return nil
}

func writeResult(w io.Writer, root ast.Node, res *resolve.Result) {
	fmt.Fprintf(w, "AST: %s\n", ast.ToSExpr(root))
	fmt.Fprintf(w, "Type: %s\n", res.Type)
	fmt.Fprintf(w, "Symbols:\n")
	for _, sym := range res.Symbols {
		fmt.Fprintf(w, "    %s\n", resolve.SymbolSExpr(sym))
	}
}

func writeTokens(w io.Writer, code string) error {
	s := lex.FromString(code)
	for {
		tok, ok := s.Next()
		if !ok {
			break
		}
		fmt.Fprintf(w, "%d\t%s\n", tok.Line, tok.Describe())
		if tok.Kind == token.EOF {
			break
		}
	}
	return s.Err()
}

func writeTree(w io.Writer, root ast.Node, tree bool) {
	if tree {
		fmt.Fprintln(w, ast.Format(root))
		return
	}
	fmt.Fprintln(w, ast.ToSExpr(root))
}

func readSource(filename string) string {
	sourceBytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}
	return string(sourceBytes)
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "tokens":
		tokensCommand(args)
	case "parse":
		parseCommand(args)
	case "check":
		checkCommand(args)
	case "eval":
		evalCommand(args)
	case "repl":
		os.Exit(replCommand(args))
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
