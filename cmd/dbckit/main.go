package main

import (
	"os"

	"github.com/wowemu-tools/dbckit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
