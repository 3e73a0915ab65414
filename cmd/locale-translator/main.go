package main

import "locale-translator/internal/cli"

func main() {
	cli.Execute()
}
