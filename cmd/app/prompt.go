package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm asks a yes/no question. An empty answer selects def.
func confirm(in io.Reader, out io.Writer, question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(out, "%s (%s) ", question, hint)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// doubleConfirm asks twice, defaulting to no both times.
func doubleConfirm(in io.Reader, out io.Writer, action string) (bool, error) {
	fmt.Fprintf(out, "\nWARNING: This will %s!\n\n", action)

	r := bufio.NewReader(in)
	ok, err := confirm(r, out, fmt.Sprintf("Are you sure you want to %s?", action), false)
	if err != nil || !ok {
		return false, err
	}
	return confirm(r, out, "This action cannot be undone. Continue?", false)
}
