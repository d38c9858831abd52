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
	"go.uber.org/zap"

	"dirpx.dev/formlist/apis"
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure Logger is usable.
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided:
// no rules, no initial value, no transforms, derived layout hint and a
// no-op logger.
func DefaultConfig() apis.Config {
	return apis.Config{
		Logger: zap.NewNop(),
	}
}

// NoStyle resolves the layout hint: the explicit value if one was given,
// otherwise true unless rules are configured.
func NoStyle(cfg apis.Config) bool {
	if cfg.NoStyle != nil {
		return *cfg.NoStyle
	}
	return len(cfg.Rules) == 0
}

// Misconfigured reports whether both transforms are set. They are not meant
// to compose; lists still run with both.
func Misconfigured(cfg apis.Config) bool {
	return cfg.Normalize != nil && cfg.Formatter != nil
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithRules sets the validation rules forwarded to the underlying field.
func WithRules(rules ...apis.Rule) Option {
	return func(c *apis.Config) {
		c.Rules = append([]apis.Rule(nil), rules...)
	}
}

// WithInitialValue sets the initial value and marks it as explicitly
// provided, even when v is nil.
func WithInitialValue(v any) Option {
	return func(c *apis.Config) {
		c.InitialValue = v
		c.HasInitialValue = true
	}
}

// WithNormalize sets the write-side transform.
func WithNormalize(fn apis.Transform) Option {
	return func(c *apis.Config) {
		c.Normalize = fn
	}
}

// WithFormatter sets the read-side transform.
func WithFormatter(fn apis.Transform) Option {
	return func(c *apis.Config) {
		c.Formatter = fn
	}
}

// WithNoStyle sets the layout hint explicitly.
func WithNoStyle(noStyle bool) Option {
	return func(c *apis.Config) {
		c.NoStyle = &noStyle
	}
}

// WithLogger sets the logger for configuration warnings.
// A nil logger resets to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *apis.Config) {
		if l == nil {
			l = zap.NewNop()
		}
		c.Logger = l
	}
}
