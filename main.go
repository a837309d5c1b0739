package main

import "github.com/Halsjsko/BobTheBot/cmd"

func main() {
	cmd.Execute()
}
