package main

import "photocat/cmd/photocat/cmd"

func main() {
	cmd.Execute()
}
