package main

import (
	"flag"
	"os"

	"github.com/elysium-rpg/pdf-service/internal/platform/config"
	"github.com/elysium-rpg/pdf-service/internal/tools/templatefields"
)

func main() {
	cfg, err := templatefields.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := templatefields.Run(cfg, os.Stdout); err != nil {
		config.Exitf("list template fields: %v", err)
	}
}
