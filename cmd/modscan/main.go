package main

import "modscan/internal/cli"

func main() {
	cli.Execute()
}
