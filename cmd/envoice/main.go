package main

import (
	"fmt"
	"os"

	"github.com/rezonia/envoice-go/cmd/envoice/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
