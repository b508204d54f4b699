// Command quill is the reference CLI for the Quill expression language.
package main

import (
	"fmt"
	"os"

	"github.com/kestrel-lang/quill/cmd/quill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
