package main

import (
	"os"

	"github.com/vzahanych/weather-cli/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
