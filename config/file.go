/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DefaultField is the list field used when none is configured.
	DefaultField = "items"
	// DefaultLogLevel is the log level used when none is configured.
	DefaultLogLevel = "info"
	// EnvPrefix prefixes environment overrides, e.g. FORMLIST_LOG_LEVEL.
	EnvPrefix = "FORMLIST"
)

// ErrEmptyField is returned when the configured field is blank.
var ErrEmptyField = errors.New("formlist(config): empty field")

// File is the on-disk/environment configuration of the formlist tooling.
type File struct {
	Field   string    `mapstructure:"field"`
	NoStyle *bool     `mapstructure:"no_style"`
	Log     LogConfig `mapstructure:"log"`
}

// LogConfig selects the zap preset and level.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load reads configuration from path, or from ./formlist.yaml when path is
// empty. A missing default file is not an error; a missing explicit file is.
// Environment variables prefixed with FORMLIST override file values.
func Load(path string) (*File, error) {
	v := viper.New()

	v.SetDefault("field", DefaultField)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.development", false)

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("formlist")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	// Unmarshal leaves unset pointers nil; only honour an explicit value.
	if v.IsSet("no_style") {
		ns := v.GetBool("no_style")
		f.NoStyle = &ns
	}

	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Options converts the file into list options.
func (f *File) Options() []Option {
	var opts []Option
	if f.NoStyle != nil {
		opts = append(opts, WithNoStyle(*f.NoStyle))
	}
	return opts
}

func (f *File) validate() error {
	if strings.TrimSpace(f.Field) == "" {
		return ErrEmptyField
	}
	if _, err := zapcore.ParseLevel(f.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", f.Log.Level, err)
	}
	return nil
}

// NewLogger builds a zap logger for lc.
func NewLogger(lc LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", lc.Level, err)
	}

	zc := zap.NewProductionConfig()
	if lc.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
