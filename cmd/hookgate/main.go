package main

import "github.com/ppiankov/hookgate/internal/cli"

func main() {
	cli.Execute()
}
