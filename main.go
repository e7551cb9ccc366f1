package main

import "github.com/alexiusacademia/wingstruct/cmd"

func main() {
	cmd.Execute()
}
