package main

import "runwaydl/cmd"

func main() {
	cmd.Execute()
}
