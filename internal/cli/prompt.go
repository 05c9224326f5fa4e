package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

func (a *App) reader() *bufio.Reader {
	if a.in == nil {
		a.in = bufio.NewReader(a.Stdin)
	}
	return a.in
}

// prompt reads one line from stdin after printing label on stderr.
func (a *App) prompt(label string) (string, error) {
	fmt.Fprintf(a.Stderr, "%s: ", label)
	line, err := a.reader().ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptSecret reads without echo when stdin is a terminal.
func (a *App) promptSecret(label string) (string, error) {
	f, ok := a.Stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return a.prompt(label)
	}
	fmt.Fprintf(a.Stderr, "%s: ", label)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(a.Stderr)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return string(b), nil
}

// valueOr returns v, or prompts for it when v is empty.
func (a *App) valueOr(v, label string, secret bool) (string, error) {
	if v != "" {
		return v, nil
	}
	if secret {
		return a.promptSecret(label)
	}
	return a.prompt(label)
}
