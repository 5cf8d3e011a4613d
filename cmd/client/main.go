package main

import "lavka/cmd/client/cmd"

func main() {
	cmd.Execute()
}
