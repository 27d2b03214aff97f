package main

import (
	"github.com/on-the-ground/rvm_ive_go/internal/cli"
	"github.com/tebeka/atexit"
)

func main() {
	atexit.Exit(cli.Execute())
}
