package main

import "github.com/itsmostafa/weave/cmd"

func main() {
	cmd.Execute()
}
