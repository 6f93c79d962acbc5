package main

import "github.com/thesyncim/opuscore/cmd/opuspkt/cmd"

func main() {
	cmd.Execute()
}
