package main

import "github.com/golangdaddy/rcproam/cmd"

func main() {
	cmd.Execute()
}
