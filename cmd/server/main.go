package main

import "nodex/cmd/server/cmd"

func main() {
	cmd.Execute()
}
