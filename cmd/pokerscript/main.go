package main

import (
	"log"
	"os"

	"github.com/funvibe/pokerscript/pkg/cli"
)

func main() {
	log.SetFlags(0)          // Disable timestamp in logs
	log.SetOutput(os.Stderr) // stdout carries dumps and listings

	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
