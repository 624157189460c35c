package main

import "github.com/example/calbook/cmd"

func main() {
	cmd.Execute()
}
