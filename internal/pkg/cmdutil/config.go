// Package cmdutil provides shared utilities for CLI command implementations.
//
// Values resolve in the order: explicitly set flag, config file or environment
// (through viper), flag default.
package cmdutil

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// GetStringConfig returns the value of flag name, falling back to config key.
func GetStringConfig(cmd *cobra.Command, name, key string) string {
	value, _ := cmd.Flags().GetString(name)
	if cmd.Flags().Changed(name) || !viper.IsSet(key) {
		return value
	}
	return viper.GetString(key)
}

// GetIntConfig returns the value of flag name, falling back to config key.
func GetIntConfig(cmd *cobra.Command, name, key string) int {
	value, _ := cmd.Flags().GetInt(name)
	if cmd.Flags().Changed(name) || !viper.IsSet(key) {
		return value
	}
	return viper.GetInt(key)
}

// GetBoolConfig returns the value of flag name, falling back to config key.
func GetBoolConfig(cmd *cobra.Command, name, key string) bool {
	value, _ := cmd.Flags().GetBool(name)
	if cmd.Flags().Changed(name) || !viper.IsSet(key) {
		return value
	}
	return viper.GetBool(key)
}

// ParseSizeString parses a size string (e.g., "100M", "1G", "500K") and returns bytes.
// Supported suffixes: K/k (KiB), M/m (MiB), G/g (GiB).
func ParseSizeString(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	lastChar := s[len(s)-1]
	var multiplier int64 = 1

	switch lastChar {
	case 'K', 'k':
		multiplier = 1024
		s = s[:len(s)-1]
	case 'M', 'm':
		multiplier = 1024 * 1024
		s = s[:len(s)-1]
	case 'G', 'g':
		multiplier = 1024 * 1024 * 1024
		s = s[:len(s)-1]
	}

	var value int64
	if _, err := fmt.Sscanf(s, "%d", &value); err != nil {
		return 0, fmt.Errorf("invalid size value: %w", err)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative size: %d", value)
	}

	if value > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size overflows int64: %d x %d", value, multiplier)
	}

	return value * multiplier, nil
}
