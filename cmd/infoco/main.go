package main

import (
	"context"
	"fmt"
	"os"

	"infoco/internal/cli"
)

func main() {
	root := cli.NewRootCommand(cli.DefaultBootstrap)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cli.NewErrorHandler().HandleSimple(err))
		os.Exit(1)
	}
}
