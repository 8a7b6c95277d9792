package main

import (
	"fmt"
	"os"

	"gridlight/internal/explorer"
)

func main() {
	e, err := explorer.New(explorer.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	e.Run()
}
