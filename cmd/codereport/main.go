package main

import (
	"os"

	"github.com/dshills/codereport/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
