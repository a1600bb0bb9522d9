package main

import "soundest/cmd"

func main() {
	cmd.Execute()
}
