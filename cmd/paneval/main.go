package main

import (
	"os"

	"paneval/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
