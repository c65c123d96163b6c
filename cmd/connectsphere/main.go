package main

import "github.com/connectsphere/cli/internal/cmd"

func main() {
	cmd.Execute()
}
