package main

import (
	"os"

	"github.com/kubev2v/capacity-planner/cmd"
	"github.com/kubev2v/capacity-planner/internal/config"
)

func main() {
	cfg := config.NewConfigurationWithOptionsAndDefaults()
	if err := cmd.NewRunCommand(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
