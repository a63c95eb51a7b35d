package main

import "goremu/cmd"

func main() {
	cmd.Execute()
}
