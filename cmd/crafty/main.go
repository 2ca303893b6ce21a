package main

import "github.com/aweris/crafty/cmd/crafty/cmd"

func main() {
	cmd.Execute()
}
