package main

import (
	"github.com/taskvault/taskvault/internal/app"
	"github.com/taskvault/taskvault/internal/cli"
)

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustOpenStorage()

	cli.Execute()
}
