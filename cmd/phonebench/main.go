// Command phonebench parses every line of a directory of sample files and
// reports parse, validation and formatting throughput per region.
//
// Each file's region is the last two letters of its name, upper-cased, so a
// file named de_DE holds German numbers.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
