// Command weft compiles .weft templates to Go and runs the development
// server.
package main

import (
	"os"

	"github.com/weftml/weft/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
