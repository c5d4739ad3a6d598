package main

import "LifeKLine/cmd"

func main() {
	cmd.Execute()
}
