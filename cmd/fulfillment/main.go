package main

import "github.com/viniciusfonseca/fulfillment-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
