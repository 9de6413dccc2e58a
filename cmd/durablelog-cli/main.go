package main

import "github.com/backbone81/durable-log/cmd/durablelog-cli/cmd"

func main() {
	cmd.Execute()
}
