package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/teranos/movets/cmd/movets/commands"
	"github.com/teranos/movets/errors"
	"github.com/teranos/movets/logger"
)

func main() {
	err := commands.RootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		pterm.Error.WithWriter(os.Stderr).Println(err.Error())
		if hints := errors.FlattenHints(err); hints != "" {
			pterm.Info.WithWriter(os.Stderr).Println(hints)
		}
		os.Exit(1)
	}
}
