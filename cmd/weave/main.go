// cmd/weave/main.go
package main

import (
	"fmt"
	"io"
	stlog "log" // for fatal errors before the logger is ready
	"os"

	"github.com/bethropolis/weave/internal/app"
	"github.com/bethropolis/weave/internal/config"
	"github.com/bethropolis/weave/internal/logger"
)

var version = "dev"

func main() {
	// --- Flags & Configuration ---
	var flags config.Flags
	files := flags.ParseFlags()

	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}

	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, &flags)

	// --- Logger Initialization ---
	var logOutput io.Writer = io.Discard
	switch path := cfg.Logger.LogFilePath; path {
	case "":
	case "-":
		logOutput = os.Stderr
	default:
		logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			stlog.Fatalf("Failed to open log file '%s': %v", path, err)
		}
		defer logFile.Close()
		logOutput = logFile
	}
	logger.Init(cfg.Logger, logOutput)

	logger.Infof("Starting %s %s", config.AppName, version)
	if cfgErr != nil {
		logger.Warnf("Config: %v (using defaults)", cfgErr)
		fmt.Fprintf(os.Stderr, "Warning: %v\n", cfgErr)
	}
	for _, key := range config.UnknownKeys() {
		logger.Warnf("Config: unknown key '%s' ignored", key)
	}
	if len(files) > 0 {
		logger.Debugf("Files from the command line: %v", files)
	}

	// --- Create and Run App ---
	weaveApp, err := app.NewApp(cfg)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := weaveApp.Run(files); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}
