package main

import (
	"os"

	"github.com/ariel-frischer/debcatalog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
