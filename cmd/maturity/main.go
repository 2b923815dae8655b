// Command maturity records an accessibility maturity assessment from the
// command line. State is kept in the configured storage backend and snapshots
// can be exported, imported and archived.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exitFunc = os.Exit

func main() {
	a := newApp(os.Stdout, os.Stderr)
	if err := execute(a, newRootCmd(a)); err != nil {
		exitFunc(1)
	}
}

// execute runs root and releases storage whether or not the command failed.
func execute(a *app, root *cobra.Command) error {
	err := root.Execute()
	if terr := a.teardown(); terr != nil {
		fmt.Fprintln(a.errOut, "Error:", terr)
		err = errors.Join(err, terr)
	}
	return err
}
