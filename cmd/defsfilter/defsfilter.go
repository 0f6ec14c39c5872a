// Command defsfilter merges hand-written definitions into a generated
// definitions file.
//
//	defsfilter -t $(top_srcdir) -e tny-extra.defs < tny.defs.in > tny.defs
package main

import (
	"os"

	"github.com/tinymail/defsfilter/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
