package main

import "github.com/tobihoff/anirate/cli"

func main() {
	cli.Execute()
}
