package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/johnquangdev/comment-analytics/internal/adapter/repository"
	"github.com/johnquangdev/comment-analytics/internal/adapter/repository/mongostore"
	"github.com/johnquangdev/comment-analytics/internal/domain/repositories"
	"github.com/johnquangdev/comment-analytics/internal/infrastructure/database"
	"github.com/johnquangdev/comment-analytics/pkg/config"
)

func main() {
	dir := flag.String("dir", database.MigrationsDir, "directory holding sql-migrate files")
	down := flag.Bool("down", false, "roll migrations back instead of applying them")
	limit := flag.Int("max", 0, "maximum number of migrations to run (0 = all)")
	backfill := flag.Bool("backfill-discussions", false, "convert legacy major_discussions into discussions")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	var analyses repositories.AnalysisRepository

	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		client, db, err := database.NewMongoDB(ctx, &cfg.Mongo)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer database.CloseMongo(context.Background(), client)

		store := mongostore.NewStore(db)
		log.Println("🔄 Ensuring MongoDB indexes...")
		if err := store.EnsureIndexes(ctx); err != nil {
			log.Fatalf("Failed to create indexes: %v", err)
		}
		log.Println("✅ Indexes ready")
		analyses = store

	default:
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)

		log.Printf("🔄 Running migrations from %s/ (down=%v)...", *dir, *down)
		n, err := database.Migrate(db, *dir, *down, *limit)
		if err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Printf("✅ Successfully ran %d migration(s)!\n", n)
		analyses = repository.NewAnalysisRepository(db)
	}

	if !*backfill {
		return
	}
	if *down {
		log.Println("⚠️  Skipping discussions backfill after a rollback")
		return
	}

	log.Println("🔄 Backfilling discussions from legacy major_discussions...")
	converted, err := analyses.BackfillLegacyDiscussions(ctx)
	if err != nil {
		log.Fatalf("Backfill failed after %d record(s): %v", converted, err)
	}
	log.Printf("✅ Converted %d record(s)", converted)
}
