package main

import (
	"os"

	"github.com/NordeaOSS/esp.terraform/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
