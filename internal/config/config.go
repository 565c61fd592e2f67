// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package config loads recurring-investigation defaults (image set, volume
// name, log level) from an optional config file, letting CLI flags override
// whatever it supplies.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the defaults a config file may supply; any field left at its
// zero value is simply not a default and the CLI flag (or its own default)
// governs instead.
type Config struct {
	Images   []string `mapstructure:"images"`
	Volume   string   `mapstructure:"volume"`
	LogLevel string   `mapstructure:"log-level"`
}

// Load reads the config file named by $NWFSREAD_CONFIG, falling back to
// ~/.config/nwfsread/config.yaml. A missing file is not an error: Load
// returns a zero Config and the caller proceeds on flags alone.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path := os.Getenv("NWFSREAD_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return &Config{}, nil
		}
		v.AddConfigPath(filepath.Join(home, ".config", "nwfsread"))
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
