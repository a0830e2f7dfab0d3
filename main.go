// Entry point for the callsim binary. All command wiring lives in the
// cmd package.

package main

import (
	"github.com/jwardwell7077/charlie-reporting-sub002/cmd"
)

func main() {
	cmd.Execute()
}
