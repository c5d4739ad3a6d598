package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	debug      bool
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lifekline",
	Short: "Life K-line: BaZi destiny analysis as a candlestick chart",
	Long: `LifeKLine turns a BaZi birth chart (four pillars plus the first luck
pillar) into a 1-100 age "K-line" of fortune scores and a categorised report.

  lifekline serve     start the analysis backend and the web page
  lifekline analyze   call a running backend and print the result`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug mode: colour console logs at DEBUG level")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .config.json searched upwards)")
}
