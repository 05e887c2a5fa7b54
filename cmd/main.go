package main

import (
	"os"

	"github.com/AlexRzehak/FlashBoxFactory/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
