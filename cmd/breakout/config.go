package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breakout-sim/internal/config"
)

var flagShowDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration as YAML after the config file, preset and
--fps override are applied. With --default, print the built-in defaults,
which is a good starting point for ~/.breakout/config.yaml.`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagShowDefault, "default", false, "Print the built-in default config")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagShowDefault {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := resolveConfig(flagConfig, flagPreset, flagFPS)
	exitOnErr("loading config", err)

	data, err := config.Marshal(cfg)
	exitOnErr("encoding config", err)
	fmt.Print(string(data))
}
