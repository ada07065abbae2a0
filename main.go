package main

import (
	"os"

	"github.com/Aditi-N-28/ArthaMind/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
