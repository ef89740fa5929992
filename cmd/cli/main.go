package main

import "github.com/hctl-dev/hctl/pkg/cli"

func main() {
	cli.Execute()
}
