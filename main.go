package main

import "github.com/gaurav-prasanna/titlecrawl/cmd"

func main() {
	cmd.Execute()
}
