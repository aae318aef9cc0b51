package main

import "github.com/oshokin/snake-game/cmd/snake/cmd"

func main() {
	cmd.Execute()
}
