package main

import "docmigrate/cmd/docmigrate/cmd"

func main() {
	cmd.Execute()
}
