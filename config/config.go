// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package config implements reading
// of the configuration file
// for database and cache services.
//
// The configuration is a YAML file,
// for example:
//
//	db:
//	  host: localhost
//	  user: gtdb
//	  pass: secret
//	redis:
//	  host: localhost:6379
//	  pass: secret
//
// The file is read and parsed only when a value is first requested,
// so tools that do not use the services
// are not affected by configuration errors.
package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvVar is the environment variable
// with the path of the configuration file.
const EnvVar = "GTDBLIB_CONFIG"

// ErrConfig is returned when the configuration
// is undefined or invalid.
var ErrConfig = errors.New("configuration error")

// DB is the configuration of the database server.
type DB struct {
	Host string `yaml:"host" validate:"required"`
	User string `yaml:"user" validate:"required"`
	Pass string `yaml:"pass"`
}

// Redis is the configuration of the Redis server.
type Redis struct {
	Host string `yaml:"host" validate:"required"`
	Pass string `yaml:"pass"`
}

type file struct {
	DB    DB    `yaml:"db"`
	Redis Redis `yaml:"redis"`
}

// A Config is a configuration file.
// It should be created once,
// and passed to the components that use it.
type Config struct {
	path string

	once sync.Once
	data file
	err  error
}

// FromEnv returns a configuration
// using the file defined
// in the GTDBLIB_CONFIG environment variable.
func FromEnv() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil, fmt.Errorf("%w: environment variable %s not set", ErrConfig, EnvVar)
	}
	return Open(path), nil
}

// Open returns a configuration
// from the given file.
// The file will be read on first use.
func Open(path string) *Config {
	return &Config{path: path}
}

// Path returns the path of the configuration file.
func (c *Config) Path() string {
	return c.path
}

// DB returns the database configuration.
func (c *Config) DB() (DB, error) {
	if err := c.load(); err != nil {
		return DB{}, err
	}
	if err := validate.Struct(c.data.DB); err != nil {
		return DB{}, fmt.Errorf("%w: file %q: db: %v", ErrConfig, c.path, err)
	}
	return c.data.DB, nil
}

// Redis returns the Redis configuration.
func (c *Config) Redis() (Redis, error) {
	if err := c.load(); err != nil {
		return Redis{}, err
	}
	if err := validate.Struct(c.data.Redis); err != nil {
		return Redis{}, fmt.Errorf("%w: file %q: redis: %v", ErrConfig, c.path, err)
	}
	return c.data.Redis, nil
}

var validate = validator.New()

func (c *Config) load() error {
	c.once.Do(func() {
		b, err := os.ReadFile(c.path)
		if err != nil {
			c.err = err
			return
		}
		if err := yaml.Unmarshal(b, &c.data); err != nil {
			c.err = fmt.Errorf("%w: file %q: %v", ErrConfig, c.path, err)
		}
	})
	return c.err
}
