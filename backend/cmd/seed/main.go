package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/graph"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/hashtag"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/mirror"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/social"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/store"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/config"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/logger"
)

// Resets both stores and loads a small demo dataset through the real
// services, so every seeded fact also lands in the graph mirror.
func main() {
	skipConfirm := flag.Bool("y", false, "Skip confirmation prompt")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database reset and seed...")

	// Warning prompt
	if !*skipConfirm {
		log.Warn("⚠️  WARNING: This will DELETE ALL DATA from Neo4j!")
		log.Warn("This action cannot be undone.")
		fmt.Print("Are you sure you want to continue? (yes/no): ")
		var response string
		fmt.Scanln(&response)
		if response != "yes" && response != "y" {
			log.Info("Aborted.")
			os.Exit(0)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	// Initialize Postgres
	db, err := store.Open(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to Postgres", zap.Error(err))
	}

	log.Info("Step 1: Migrating relational schema...")
	if err := db.AutoMigrate(
		&store.User{}, &store.Post{}, &store.Hashtag{},
		&store.Follow{}, &store.Like{}, &store.Repost{},
	); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}

	graphRepo := graph.NewRepository(driver)

	log.Info("Step 2: Flushing graph mirror...")
	if err := graphRepo.FlushMirror(ctx); err != nil {
		log.Fatal("Failed to flush mirror", zap.Error(err))
	}

	log.Info("Step 3: Creating graph constraints and indexes...")
	createConstraints(ctx, driver, log)

	log.Info("Step 4: Seeding demo data...")
	if err := seedDemoData(ctx, db, graphRepo); err != nil {
		log.Fatal("Failed to seed demo data", zap.Error(err))
	}

	log.Info("Reset and seed completed successfully")
}

func createConstraints(ctx context.Context, driver neo4j.DriverWithContext, log *zap.Logger) {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	statements := []string{
		"CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE",
		"CREATE CONSTRAINT post_id_unique IF NOT EXISTS FOR (p:Post) REQUIRE p.id IS UNIQUE",
		"CREATE CONSTRAINT hashtag_tag_unique IF NOT EXISTS FOR (h:Hashtag) REQUIRE h.tag IS UNIQUE",
		"CREATE INDEX post_created_at IF NOT EXISTS FOR (p:Post) ON (p.created_at)",
	}

	for _, stmt := range statements {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			log.Warn("Failed to create constraint (may already exist)",
				zap.String("statement", stmt), zap.Error(err))
		}
	}
}

func seedDemoData(ctx context.Context, db *gorm.DB, graphRepo *graph.Repository) error {
	graphMirror := mirror.New(graphRepo)

	users := store.NewUserRepository(db)
	posts := store.NewPostRepository(db)
	hashtags := store.NewHashtagRepository(db)
	follows := store.NewFollowRepository(db)

	registry := hashtag.NewRegistry(hashtags, graphMirror)
	userService := social.NewUserService(users, graphMirror)
	postService := social.NewPostService(posts, registry)
	followService := social.NewFollowService(follows, graphMirror)

	seeds := []struct {
		username    string
		displayName string
	}{
		{"marta_10", "Marta Silva"},
		{"pele_fan", "Edson A."},
		{"courtside", "Dana K."},
		{"matchday", "Leo P."},
		{"the_keeper", "Iker C."},
	}

	ids := make([]string, 0, len(seeds))
	for _, s := range seeds {
		user, err := userService.Create(ctx, s.username, s.displayName)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", s.username, err)
		}
		ids = append(ids, user.ID)
	}

	// A ring of follows plus a couple of extras, enough for the two-hop
	// traversal to return something interesting.
	edges := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}, {0, 2}, {1, 3}}
	for _, e := range edges {
		if _, err := followService.Follow(ctx, ids[e[0]], ids[e[1]]); err != nil {
			return fmt.Errorf("failed to create follow: %w", err)
		}
	}

	contents := []string{
		"What a final! #football #UCL",
		"Triple double tonight #basketball #NBA",
		"Nothing beats a packed stadium #football #matchday",
		"Transfer window chaos again #football",
		"Clean sheet streak continues #football #goalkeeping",
	}
	for i, content := range contents {
		if _, err := postService.Create(ctx, ids[i%len(ids)], content); err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	return nil
}
