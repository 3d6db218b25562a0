package main

import (
	"os"

	"github.com/Rizzpect/Youtube-Transcipt-Manager/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
