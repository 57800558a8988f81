package main

import "github.com/mcoot/pokerclub/internal/cli"

func main() {
	cli.Execute()
}
