package main

import (
	"os"

	"taleweaver/cmd"
)

// @title           Taleweaver API
// @version         1.0
// @description     Branching interactive story service: create stories, continue them chapter by chapter and browse the story tree.
// @BasePath        /
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
