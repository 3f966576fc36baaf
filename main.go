package main

import "github.com/Beastly713/stegtext/cmd"

func main() {
	cmd.Execute()
}
