package main

import "github.com/mvp-joe/typejuice/internal/cli"

func main() {
	cli.Execute()
}
