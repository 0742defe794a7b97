// Command cwah resolves family relation chains to Chinese kinship terms.
package main

import (
	"fmt"
	"os"

	"github.com/kkennyy/call-what-ah/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
