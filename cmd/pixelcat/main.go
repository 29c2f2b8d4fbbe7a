package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL   string
	sessionPath string
)

var rootCmd = &cobra.Command{
	Use:   "pixelcat",
	Short: "pixelcat logs meals and collects pixel cats from your terminal",
	Long:  "pixelcat is a command-line client for the Pixel Cat Calories server: photograph meals, watch calories add up and unlock rarer cats.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("PIXELCAT_SERVER", "http://localhost:8080"), "API base URL")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", "", "Path to the saved session (default in the user config dir)")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
