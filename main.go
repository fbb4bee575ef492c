package main

import (
	"fmt"
	"os"

	"nilan/config"
	"nilan/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg)

	switch len(os.Args) {
	case 1:
		os.Exit(runRepl(cfg, log))
	case 2:
		os.Exit(runFile(os.Args[1], cfg, log))
	default:
		fmt.Fprintln(os.Stderr, "Usage: nilan [path]")
		os.Exit(64)
	}
}
