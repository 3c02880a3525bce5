package main

import "github.com/RogoSolutions/iotcore-demo/cmd"

func main() {
	cmd.Execute()
}
