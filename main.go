package main

import "ctally/cmd"

func main() {
	cmd.Execute()
}
