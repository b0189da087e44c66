package main

import (
	"os"

	"github.com/Dicklesworthstone/rangeslider/cmd/slide/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
