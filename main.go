package main

import (
	"fmt"

	"github.com/interleave-dev/interleave/benchmarks"
)

// main entry point to all the exploration scenarios
func main() {
	rootCommand := benchmarks.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
	}
}
