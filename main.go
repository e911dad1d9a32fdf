package main

import "cardpress/cmd"

func main() {
	cmd.Execute()
}
