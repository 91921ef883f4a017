/*
ebnfc is a console utility to check grammar descriptions and run compiled grammars against input.
Usage is

	ebnfc [--config <file>] [-v] <command> ...

Commands:

	check <file>    report grammar errors and warnings;
	rules <file>    print rules table with definition and reference counts;
	parse <file>    run a rule against --input text or --file contents and print the parse tree;
	fmt <file>      print grammar in canonical form, -d prints a diff against the source;
	config          print effective configuration.

Settings are read from .ebnfc.yaml in current or home directory and from EBNFC_* environment variables.
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
