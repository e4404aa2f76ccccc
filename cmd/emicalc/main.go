// Command emicalc runs the EMI calculator in a terminal. Each input line moves
// one control, e.g. "slider principal 600000" or "field rate 11.25".
package main

import (
	"os"

	"getloanoffer/config"
	"getloanoffer/logger"
	"getloanoffer/service"
)

func main() {
	cfg := config.Load()
	logger.SetOutput(os.Stderr)
	if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	formatter := service.Formatter{
		Symbol:   cfg.CurrencySymbol,
		Grouping: service.ParseGrouping(cfg.NumberGrouping),
	}
	if err := run(os.Stdin, os.Stdout, formatter); err != nil {
		logger.Fatal("emicalc failed", "error", err)
	}
}
