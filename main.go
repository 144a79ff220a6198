package main

import "github.com/tanpawarit/consensus-solver/cmd"

func main() {
	cmd.Execute()
}
