package main

import "starwars/cmd/holoctl/commands"

func main() {
	commands.Execute()
}
