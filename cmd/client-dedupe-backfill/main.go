// The client-dedupe-backfill command materializes the registry's merge
// view: for every user, client rows sharing an identity key get their
// primary row back-filled with the group's merged field values. Older
// duplicate rows are left in place; reads already merge them, this just
// makes the primary row complete on its own.
//
// Run with -dry-run to report what would change without writing.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"gascert_backend/internal/clients/repository"
	"gascert_backend/internal/clients/service"
	"gascert_backend/platform/config"
	"gascert_backend/platform/db"
	"gascert_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report changes without writing")
	workers := flag.Int("workers", 4, "concurrent users to process")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting client dedupe backfill", "dryRun", *dryRun)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	repo := repository.New(pool)

	userIDs, err := listClientOwners(ctx, pool)
	if err != nil {
		log.Error("failed to list client owners", "error", err)
		panic("failed to list client owners: " + err.Error())
	}
	log.Info("processing users", "count", len(userIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)

	for _, userID := range userIDs {
		g.Go(func() error {
			return backfillUser(gctx, log, repo, userID, *dryRun)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("backfill failed", "error", err)
		panic("backfill failed: " + err.Error())
	}
	log.Info("client dedupe backfill complete")
}

func listClientOwners(ctx context.Context, pool *pgxpool.Pool) ([]uuid.UUID, error) {
	rows, err := pool.Query(ctx, `SELECT DISTINCT user_id FROM clients`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

func backfillUser(ctx context.Context, log *logger.Logger, repo *repository.Repository, userID uuid.UUID, dryRun bool) error {
	rows, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	groups := service.GroupByIdentity(rows)
	for key, group := range groups {
		if len(group) < 2 {
			continue
		}

		merged := service.MergeGroup(group)
		primary := findPrimary(group, merged.ID)
		if primary == nil {
			continue
		}

		changed := fillEmpty(primary, merged)
		if !changed {
			continue
		}

		log.Info("back-filling primary client row",
			"userId", userID.String(),
			"identityKey", string(key),
			"clientId", primary.ID.String(),
			"groupSize", len(group),
		)
		if dryRun {
			continue
		}
		if err := repo.Update(ctx, primary); err != nil {
			return err
		}
	}
	return nil
}

func findPrimary(group []repository.Client, id uuid.UUID) *repository.Client {
	for i := range group {
		if group[i].ID == id {
			return &group[i]
		}
	}
	return nil
}

// fillEmpty copies merged values into the primary row's empty fields and
// reports whether anything changed. Populated fields are never touched.
func fillEmpty(primary *repository.Client, merged service.MergedClient) bool {
	changed := false
	fill := func(dst *string, src string) {
		if *dst == "" && src != "" {
			*dst = src
			changed = true
		}
	}
	fill(&primary.Organization, merged.Organization)
	fill(&primary.Email, merged.Email)
	fill(&primary.Phone, merged.Phone)
	fill(&primary.Address, merged.Address)
	fill(&primary.Postcode, merged.Postcode)
	fill(&primary.LandlordName, merged.LandlordName)
	fill(&primary.LandlordAddress, merged.LandlordAddress)
	return changed
}
