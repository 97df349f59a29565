package main

import "github.com/buihoanganh/webcheck/cmd"

func main() {
	cmd.Execute()
}
