package cli

import (
	"bufio"
	"fmt"
	"strings"
)

// Confirm asks a yes/no question on Stdout and reads the answer from Stdin.
// Returns true only if the user answers 'y' or 'Y'.
func (d *Deps) Confirm(question string) bool {
	_, _ = fmt.Fprintf(d.Stdout, "%s [y/N]: ", question)

	scanner := bufio.NewScanner(d.Stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}

// Fail prints an error with optional detail lines to Stderr and exits with code 1.
// Each detail is printed on its own line as is.
func (d *Deps) Fail(message string, details ...string) {
	_, _ = fmt.Fprintln(d.Stderr, "Error: "+message)
	for _, line := range details {
		_, _ = fmt.Fprintln(d.Stderr, line)
	}
	d.Exit(1)
}
