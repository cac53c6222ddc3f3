package main

import "nathanbeddoewebdev/infrachat/cmd"

func main() {
	cmd.Execute()
}
