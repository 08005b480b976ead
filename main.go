package main

import "github.com/gaurav-prasanna/spreadview/cmd"

func main() {
	cmd.Execute()
}
