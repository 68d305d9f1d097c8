package main

import "github.com/pders01/gitcontext/cmd"

func main() {
	cmd.Execute()
}
