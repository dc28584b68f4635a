package main

import "github.com/emiliopalmerini/feedwise/internal/cli"

func main() {
	cli.Execute()
}
