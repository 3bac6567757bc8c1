// main.go
//
// Minimal entry point that delegates CLI handling to the Cobra root command in cmd/casmmontesim/root.go

package main

import (
	"github.com/bpuchala/CASMcode-monte/cmd/casmmontesim"
)

func main() {
	casmmontesim.Execute()
}
