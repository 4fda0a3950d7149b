// Command persiafts indexes a directory of HTML documents and serves
// BM25-ranked searches over them.
package main

import (
	"fmt"
	"os"

	"github.com/persiafts/engine/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
