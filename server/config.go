/*
 * Copyright 2026 The ZoneSync Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package server provides the reference ZoneSync server: team storage, the
// realtime channel, session issuance and the profiling endpoint.
package server

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/zonesync-team/zonesync/server/profiling"
)

// Below are the default values of the ZoneSync config.
const (
	DefaultProfilingPort = 8081

	DefaultSecretKey       = "zonesync-secret"
	DefaultSessionDuration = 7 * 24 * time.Hour
)

// AuthConfig is the configuration of session issuance.
type AuthConfig struct {
	// SecretKey is the key used to sign session tokens.
	SecretKey string `yaml:"SecretKey"`

	// SessionDuration is the lifetime of an issued session, in the format
	// of time.ParseDuration.
	SessionDuration string `yaml:"SessionDuration"`
}

// Config is the configuration for creating a ZoneSync instance.
type Config struct {
	Auth      *AuthConfig       `yaml:"Auth"`
	Profiling *profiling.Config `yaml:"Profiling"`
}

// NewConfig returns a Config struct filled with the default values.
func NewConfig() *Config {
	conf := &Config{}
	conf.ensureDefaultValue()
	return conf
}

// NewConfigFromFile returns a Config struct read from the given path.
func NewConfigFromFile(path string) (*Config, error) {
	conf := &Config{}
	bytes, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(bytes, conf); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w", err)
	}

	conf.ensureDefaultValue()
	return conf, nil
}

// Validate returns an error if the given config is invalid.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Auth.SessionDuration); err != nil {
		return fmt.Errorf("invalid session duration %q: %w", c.Auth.SessionDuration, err)
	}

	if err := c.Profiling.Validate(); err != nil {
		return err
	}

	return nil
}

// ParseSessionDuration returns the session duration of the config. Validate
// must have been called first.
func (c *Config) ParseSessionDuration() time.Duration {
	duration, err := time.ParseDuration(c.Auth.SessionDuration)
	if err != nil {
		return DefaultSessionDuration
	}
	return duration
}

// ensureDefaultValue sets the value of the option to which the default value
// should be applied when the user does not input it.
func (c *Config) ensureDefaultValue() {
	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if c.Auth.SecretKey == "" {
		c.Auth.SecretKey = DefaultSecretKey
	}
	if c.Auth.SessionDuration == "" {
		c.Auth.SessionDuration = DefaultSessionDuration.String()
	}

	if c.Profiling == nil {
		c.Profiling = &profiling.Config{}
	}
	if c.Profiling.Port == 0 {
		c.Profiling.Port = DefaultProfilingPort
	}
}
