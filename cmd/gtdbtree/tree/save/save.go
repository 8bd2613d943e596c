// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package save implements a command to store
// the analysis of the trees of a project
// in a database.
package save

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/gtdblib/batch"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/internal/cmdutil"
	"github.com/js-arias/gtdblib/config"
	"github.com/js-arias/gtdblib/database"
	"github.com/js-arias/gtdblib/idcache"
	"github.com/js-arias/gtdblib/store"
	"gorm.io/gorm"
)

var Command = &command.Command{
	Usage: `save [--tree <tree-name>] [--db <database>]
	[--cache] [--ttl <duration>] [--cpu <number>]
	[--strict] [-v|--verbose] <project-file>`,
	Short: "store tree analyses in a database",
	Long: `
Command save reads the trees from a project, calculates the depth and the
identifying pair of taxa of each node, and stores the results in a PostgreSQL
database. Previously stored results of a tree with the same name will be
replaced.

The connection parameters are read from the YAML file indicated by the
GTDBLIB_CONFIG environment variable. Here is an example file:

	db:
	  host: localhost
	  user: gtdb
	  pass: secret
	redis:
	  host: localhost:6379
	  pass: secret

The argument of the command is the name of the project file.

By default all trees will be stored. If the flag --tree is set, only the
indicated tree will be stored. By default the database "gtdb" will be used.
Use the flag --db to set a different database.

Trees with internal nodes with less than two children can not be stored. If
the flag --strict is defined, the terminals of each tree must be unique, and
all taxa in the project namespace must be terminals of the tree.

If the flag --cache is defined, the node identifiers will also be stored in
the Redis server. The flag --ttl sets the expiration time of the cached values
(by default 24h).

Trees are analyzed in parallel; by default all available CPUs will be used.
Use the flag --cpu to set a different number of CPUs.

Use the flag --verbose, or -v, to print the progress of the analysis.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var dbName string
var cacheFlag bool
var ttl time.Duration
var numCPU int
var strictFlag bool
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&dbName, "db", "gtdb", "")
	c.Flags().BoolVar(&cacheFlag, "cache", false, "")
	c.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "")
	c.Flags().IntVar(&numCPU, "cpu", runtime.GOMAXPROCS(0), "")
	c.Flags().BoolVar(&strictFlag, "strict", false, "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
	c.Flags().BoolVar(&verbose, "v", false, "")
}

func run(c *command.Command, args []string) (err error) {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	trees, err := cmdutil.ReadTrees(args[0], treeName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := cmdutil.Logger(c.Stderr(), verbose)
	results := batch.Run(ctx, trees, batch.Options{
		CPU:    numCPU,
		Strict: strictFlag,
		Logger: logger,
	})
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}

	var ch idcache.Cache
	if cacheFlag {
		rc, rErr := cfg.Redis()
		if rErr != nil {
			return rErr
		}
		r, rErr := idcache.NewRedis(ctx, rc, ttl)
		if rErr != nil {
			return rErr
		}
		defer func() {
			e := r.Close()
			if e != nil && err == nil {
				err = e
			}
		}()
		ch = r
	}

	engines := database.New(cfg, logger)
	defer func() {
		e := engines.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	err = engines.Session(ctx, dbName, func(tx *gorm.DB) error {
		if err := store.Migrate(tx); err != nil {
			return err
		}
		for _, r := range results {
			if err := store.Save(tx, r.Name, r.Analysis); err != nil {
				return fmt.Errorf("while storing tree %q: %w", r.Name, err)
			}
			logger.Info("tree stored", "tree", r.Name, "db", dbName, "nodes", r.Analysis.Depths.Len())
		}
		return nil
	})
	if err != nil {
		return err
	}

	if ch == nil {
		return nil
	}
	var errs []error
	for _, r := range results {
		if err := ch.Set(ctx, r.Name, r.Analysis.IDs); err != nil {
			errs = append(errs, fmt.Errorf("while caching tree %q: %w", r.Name, err))
			continue
		}
		logger.Debug("tree cached", "tree", r.Name)
	}
	return errors.Join(errs...)
}
