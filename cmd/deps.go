package cmd

import (
	"github.com/xolan/tt/internal/cli"
)

// SetDeps sets the dependencies used by all commands (for testing).
func SetDeps(d *cli.Deps) {
	cli.SetDeps(d)
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	cli.ResetDeps()
}

// deps returns the dependencies of the running command
func deps() *cli.Deps {
	return cli.GetDeps()
}
