package config

import (
	"os"

	"github.com/spf13/viper"
)

// loadEnvFiles merges simple KEY=VALUE files into v if they exist.
// It is a best-effort helper for local development; errors are ignored.
func loadEnvFiles(v *viper.Viper, paths ...string) {
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		parsed := viper.New()
		parsed.SetConfigType("env")
		if err := parsed.ReadConfig(f); err == nil {
			_ = v.MergeConfigMap(parsed.AllSettings())
		}
		_ = f.Close()
	}
}
