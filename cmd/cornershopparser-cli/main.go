package main

import "cornershopparser/cmd/cornershopparser-cli/commands"

func main() {
	commands.Execute()
}
