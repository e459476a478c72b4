package main

import (
	"os"

	"github.com/EasterCompany/dex-lipi-service/cmd/lipi/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
