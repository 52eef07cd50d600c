package main

import (
	"os"

	"github.com/atomicstack/glyph-popup/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
