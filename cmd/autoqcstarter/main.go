package main

import (
	"log/slog"
	"os"

	"github.com/nilshoffmann/pwiz/pkg/starter"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("exiting", "error", err)
		os.Exit(starter.ExitCode(err))
	}
}
