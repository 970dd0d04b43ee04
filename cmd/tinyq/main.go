/*
Command tinyq queries HTML documents and renders templates from the command line.

	tinyq query page.html "ul > li" --filter @odd --tree
	tinyq render row.tmpl --data data.yaml --lang en.yaml
	tinyq expand nav.txt

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/tinyq"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if tinyq.KindOf(err) != tinyq.NoKind {
			tracer().Debugf("%s", tinyq.ErrorStack(err))
		}
		os.Exit(1)
	}
}
