package main

import (
	"fmt"
	"os"

	"menu_verification/presentation/terminal"
)

func main() {
	termInterface, err := terminal.NewTerminalInterface()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	if err := termInterface.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
