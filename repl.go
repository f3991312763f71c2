package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/tinyc-lang/tinyc/ast"
	"github.com/tinyc-lang/tinyc/diag"
	"github.com/tinyc-lang/tinyc/parse"
	"github.com/tinyc-lang/tinyc/resolve"
)

const (
	historyFile = ".tinyc_history"
	promptMain  = "tinyc> "
	promptCont  = "...... "
)

const replHelp = `Enter tinyc statements. Declarations persist for the session.
    :tree      draw the tree of the last input
    :symbols   list every symbol declared so far
    :reset     forget all declarations
    :quit      leave the session
`

// inputSeparator ends every accepted input, so an input without a final
// ';' does not run into the next one.
const inputSeparator = "\n;\n"

// session accumulates the inputs that checked cleanly, so later inputs see
// earlier declarations.
type session struct {
	accepted strings.Builder
	last     ast.Node
}

// eval checks input against the session. Only inputs that check cleanly
// are kept.
func (s *session) eval(w io.Writer, input string) error {
	_, res, err := compile(s.accepted.String() + input)
	if err != nil {
		return err
	}
	s.accepted.WriteString(input)
	s.accepted.WriteString(inputSeparator)
	s.last, _ = parse.String(input)
	fmt.Fprintln(w, res.Type)
	return nil
}

func (s *session) command(w io.Writer, cmd string) (quit bool) {
	switch cmd {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprint(w, replHelp)
	case ":reset":
		s.accepted.Reset()
		s.last = nil
	case ":tree":
		if s.last == nil {
			fmt.Fprintln(w, "nothing entered yet")
			break
		}
		fmt.Fprintln(w, ast.Format(s.last))
	case ":symbols":
		_, res, err := compile(s.accepted.String())
		if err != nil {
			fmt.Fprintln(w, err)
			break
		}
		for _, sym := range res.Symbols {
			fmt.Fprintln(w, resolve.SymbolSExpr(sym))
		}
	default:
		fmt.Fprintf(w, "unknown command %s. Type :help for a list.\n", cmd)
	}
	return false
}

func replCommand(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tinyc repl\n")
		fmt.Fprintf(os.Stderr, "Start an interactive session\n")
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Print(replHelp)
	var s session
	for {
		input, ok := readInput(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if s.command(os.Stdout, trimmed) {
				return 0
			}
			continue
		}
		if err := s.eval(os.Stdout, input); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// readInput reads lines until they form a complete program or a definite
// error.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, err := parse.String(src); diag.Incomplete(err) {
			continue
		}
		return src, true
	}
}
