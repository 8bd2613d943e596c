// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package database implements pooled sessions
// to the PostgreSQL databases
// defined in a configuration file.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/js-arias/gtdblib/config"
	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connection pool parameters.
const (
	// PoolSize is the number of idle connections
	// kept in the pool.
	PoolSize = 5

	// MaxOverflow is the number of connections
	// that can be opened above the pool size.
	MaxOverflow = 20

	// Recycle is the maximum lifetime of a connection.
	Recycle = time.Hour
)

// Engines is a set of connection pools,
// one for each database.
type Engines struct {
	cfg       *config.Config
	logger    *slog.Logger
	dialector func(url string) gorm.Dialector

	mu  sync.Mutex
	dbs map[string]*gorm.DB
}

// An Option is used to set optional parameters
// of the engines.
type Option func(e *Engines)

// WithDialector sets the function used to create
// the gorm dialector from a connection URL.
// By default it uses the PostgreSQL driver.
func WithDialector(fn func(url string) gorm.Dialector) Option {
	return func(e *Engines) {
		e.dialector = fn
	}
}

// New returns a new set of engines
// for the given configuration.
// Connections are open on first use.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Engines {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engines{
		cfg:       cfg,
		logger:    logger,
		dialector: postgres.Open,
		dbs:       make(map[string]*gorm.DB),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// URL returns the connection URL
// of a database.
func (e *Engines) URL(name string) (string, error) {
	if name == "" {
		return "", errors.New("empty database name")
	}
	if e.cfg == nil {
		return "", fmt.Errorf("%w: database %q: undefined configuration", config.ErrConfig, name)
	}
	db, err := e.cfg.DB()
	if err != nil {
		return "", err
	}
	u := &url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(db.User, db.Pass),
		Host:   db.Host,
		Path:   "/" + name,
	}
	if db.Pass == "" {
		u.User = url.User(db.User)
	}
	return u.String(), nil
}

// Engine returns the connection pool of a database.
// The pool is created on first use.
func (e *Engines) Engine(name string) (*gorm.DB, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if db, ok := e.dbs[name]; ok {
		return db, nil
	}

	u, err := e.URL(name)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(e.dialector(u), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 slogGorm.New(slogGorm.WithHandler(e.logger.Handler())),
	})
	if err != nil {
		return nil, fmt.Errorf("database %q: %v", name, err)
	}

	sqldb, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database %q: %v", name, err)
	}
	sqldb.SetMaxIdleConns(PoolSize)
	sqldb.SetMaxOpenConns(PoolSize + MaxOverflow)
	sqldb.SetConnMaxLifetime(Recycle)

	e.logger.Debug("database pool created", "database", name)
	e.dbs[name] = db
	return db, nil
}

// Session runs fn inside a transaction
// of the indicated database.
//
// The transaction is committed if fn returns without errors,
// and rolled back otherwise.
// In both cases the connection is returned to the pool.
func (e *Engines) Session(ctx context.Context, name string, fn func(tx *gorm.DB) error) error {
	db, err := e.Engine(name)
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Transaction(fn); err != nil {
		return fmt.Errorf("database %q: %w", name, err)
	}
	return nil
}

// Close closes all the connection pools.
func (e *Engines) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var errs []error
	for name, db := range e.dbs {
		sqldb, err := db.DB()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := sqldb.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database %q: %v", name, err))
		}
		delete(e.dbs, name)
	}
	return errors.Join(errs...)
}
