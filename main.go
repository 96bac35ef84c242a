// main is the entry point for the repolens CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/repolens/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
