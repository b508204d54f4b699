package cmd

import (
	"fmt"

	"github.com/kestrel-lang/quill/internal/ast"
	"github.com/kestrel-lang/quill/internal/stdlib/fsmod"
	"github.com/kestrel-lang/quill/internal/stdlib/jsonmod"
	"github.com/kestrel-lang/quill/internal/stdlib/osmod"
	"github.com/kestrel-lang/quill/internal/stdlib/randmod"
	"github.com/kestrel-lang/quill/internal/stdlib/timemod"
)

// loadModules wires the named standard modules into root. There is no
// class/unit system here, so modules are just named Go packages the CLI
// knows how to install.
func loadModules(root *ast.Environment, names []string) error {
	for _, name := range names {
		switch name {
		case "json":
			jsonmod.Install(root)
		case "fs":
			fsmod.Install(root)
		case "time":
			timemod.Install(root)
		case "rand":
			randmod.Install(root)
		case "os":
			osmod.Install(root)
		default:
			return fmt.Errorf("unknown module %q (known: json, fs, time, rand, os)", name)
		}
	}
	return nil
}
