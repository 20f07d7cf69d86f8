package main

import (
	"os"

	"quizbuilder_backend/internals/cli"
	"quizbuilder_backend/internals/configs"
)

func main() {
	configs.LoadEnv()
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
