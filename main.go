// The main package for the pagezip executable.
package main

import (
	"github.com/ixtalo/pagezip/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
