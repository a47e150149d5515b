package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// prompter asks for values the command line left out. When not
// interactive every question silently takes its default.
type prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

func newPrompter(in io.Reader, out io.Writer, interactive bool) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out, interactive: interactive}
}

func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ask returns the answer to question, or def for a blank answer.
func (p *prompter) ask(question, def string) (string, error) {
	if !p.interactive {
		return def, nil
	}
	fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	answer, err := p.readLine()
	if err != nil {
		return "", fmt.Errorf("unable to read answer: %w", err)
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// confirm asks a yes/no question.
func (p *prompter) confirm(question string, def bool) (bool, error) {
	if !p.interactive {
		return def, nil
	}
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]: ", question, hint)
		answer, err := p.readLine()
		if err != nil {
			return false, fmt.Errorf("unable to read answer: %w", err)
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "please answer y or n")
	}
}
