package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/feargalr/Daedalus/internal/pkg/logger"
	"github.com/feargalr/Daedalus/internal/pkg/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     "acmatch",
	Short:   "acmatch finds peptides in proteins",
	Long:    fmt.Sprintf("acmatch %s - exact epitope-in-protein matching using Aho-Corasick", version.GetVersion()),
	Version: version.GetFullVersion(),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(viper.GetString("log_level"))
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSubCommandPalattes() {
	rootCmd.AddCommand(matchCmd)
}

func init() {
	cobra.OnInitialize(initConfig)

	logger.Initialize()

	addSubCommandPalattes()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/acmatch/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Priority order for config files:
		// 1. ~/.config/acmatch/config.yaml
		// 2. ~/.acmatch.yaml (legacy)
		viper.AddConfigPath(home + "/.config/acmatch")
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigName(".acmatch")
		}
	}

	viper.SetEnvPrefix("ACMATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("Using config file", "path", viper.ConfigFileUsed())
	}
}
