package main

import "github.com/feargalr/Daedalus/cmd"

func main() {
	cmd.Execute()
}
