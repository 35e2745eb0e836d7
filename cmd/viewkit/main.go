// Command viewkit inspects layout documents and exercises the toolkit
// without a platform window.
package main

import (
	"os"

	"github.com/agiangrant/viewkit/cmd/viewkit/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
