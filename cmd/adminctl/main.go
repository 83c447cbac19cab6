package main

import (
	"errors"
	"os"

	"github.com/yakumwamba/lpg-delivery-access/internal/interfaces/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.Options{}).Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		if errors.Is(err, cli.ErrDenied) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
