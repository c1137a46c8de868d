// Command venus generates synthetic Venus time series, writes them as CSV
// and charts, and optionally serves or publishes them.
//
// Usage:
//
//	venus                      # interactive menu
//	venus generate --type 3 --seed 42 --out-dir data
//	venus types
//	venus serve
//	venus validate venus_temperature_data_1960_2025.csv
package main

import (
	"os"
)

func main() {
	a := newApp(os.Stdin, os.Stdout)
	if err := a.rootCmd().Execute(); err != nil {
		a.errorLogger().Error("venus failed", "error", err)
		os.Exit(1)
	}
}
