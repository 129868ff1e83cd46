package main

import (
	"os"

	"github.com/bethropolis/dump-source/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:]))
}
