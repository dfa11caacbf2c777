package main

import (
	"os"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
