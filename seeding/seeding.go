// Package seeding runs the optional one-time startup actions against the
// document store: dropping the database, ensuring it exists, and populating
// initial data. It executes before normal repository traffic and fails fast;
// an application must not start against a partially-seeded database.
package seeding

import (
	"context"
	"fmt"

	"mongorepo/docstore"
	"mongorepo/logging"
	"mongorepo/repository"
)

// SeedFunc populates initial data. dropped and created report whether the
// database was just dropped and whether creation was just ensured, letting
// the callback decide what to seed.
type SeedFunc func(ctx context.Context, store docstore.Store, dropped, created bool) error

// Run executes the startup sequence Drop? -> EnsureCreated? -> Seed? driven
// by the options flags. It returns immediately when all three flags are
// false. Any failure aborts the sequence and propagates to the caller.
func Run(ctx context.Context, store docstore.Store, opts repository.Options, seed SeedFunc, log logging.Logger) error {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if !opts.DropDatabase && !opts.EnsureCreated && !opts.SeedDatabase {
		return nil
	}

	var dropped, created bool

	if opts.DropDatabase {
		log.Warnw("dropping database", "database", opts.DatabaseID)
		if err := store.DropDatabase(ctx); err != nil {
			return fmt.Errorf("drop database %s: %w", opts.DatabaseID, err)
		}
		dropped = true
	}

	if opts.EnsureCreated {
		if err := store.EnsureDatabase(ctx); err != nil {
			return fmt.Errorf("ensure database %s: %w", opts.DatabaseID, err)
		}
		created = true
		log.Infow("database ensured", "database", opts.DatabaseID)
	}

	if opts.SeedDatabase && seed != nil {
		if err := seed(ctx, store, dropped, created); err != nil {
			return fmt.Errorf("seed database %s: %w", opts.DatabaseID, err)
		}
		log.Infow("database seeded", "database", opts.DatabaseID, "dropped", dropped, "created", created)
	}

	return nil
}
