package main

import (
	"fmt"
	"os"

	"example.com/orderflow/internal/interface/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.ExitCode(err))
	}
}
