package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// promptList asks for a comma-separated list. Entries are trimmed and blanks
// dropped; an empty answer returns nil.
func promptList(reader *bufio.Reader, out io.Writer, question, example string) ([]string, error) {
	fmt.Fprintf(out, "%s (e.g. %s): ", question, example)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read answer: %w", err)
	}
	var values []string
	for _, part := range strings.Split(line, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values, nil
}

// promptSubtitles reads one "language" or "language, title prefix" entry per
// line until an empty line.
func promptSubtitles(reader *bufio.Reader, out io.Writer) ([]string, error) {
	fmt.Fprintln(out, "Subtitle languages to keep, one per line as \"language\" or \"language, title prefix\"; empty line to finish:")
	var values []string
	for {
		fmt.Fprint(out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read answer: %w", err)
		}
		line = strings.TrimSpace(line)
		if line != "" {
			values = append(values, line)
		}
		if line == "" || err == io.EOF {
			return values, nil
		}
	}
}
