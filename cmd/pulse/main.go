package main

import "github.com/s22625/pulse/internal/cli"

func main() {
	cli.Execute()
}
