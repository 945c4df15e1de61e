package main

import "github.com/xa0c/tally/internal/cmd"

func main() {
	cmd.Execute()
}
