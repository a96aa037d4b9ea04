package main

import (
	"os"

	"github.com/JonMunkholm/homestock/cmd/stockctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
