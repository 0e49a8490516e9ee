package main

import (
	"os"

	"MovieMatch/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
