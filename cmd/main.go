package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/time/rate"

	"github.com/ANIKETPROJECTS/RestrauntPOSV6-sub000/internal/api"
	"github.com/ANIKETPROJECTS/RestrauntPOSV6-sub000/internal/config"
	"github.com/ANIKETPROJECTS/RestrauntPOSV6-sub000/internal/repository"
	"github.com/ANIKETPROJECTS/RestrauntPOSV6-sub000/internal/service"
	"github.com/ANIKETPROJECTS/RestrauntPOSV6-sub000/migrations"
)

func connectDBEnv(host, port, user, pass, dbname string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("✅ Connected to DB %s", dbname)
				return db, nil
			}
		}
		log.Printf("❌ Retry %d: Failed to connect to DB %s (%s:%s): %v", i+1, dbname, host, port, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s at %s:%s after retries: %v", dbname, host, port, err)
}

func connectMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Printf("✅ Connected to MongoDB")
	return client, nil
}

func main() {
	db, err := connectDBEnv(
		config.GetEnv("DB_HOST", "127.0.0.1"),
		config.GetEnv("DB_PORT", "3306"),
		config.GetEnv("DB_USER", "root"),
		os.Getenv("DB_PASS"),
		config.GetEnv("DB_NAME", "pos-db"),
	)
	if err != nil {
		panic(err)
	}

	if err := migrations.AutoMigrateOrders(3, db); err != nil {
		log.Fatalf("Failed to migrate orders table: %v", err)
	}
	if err := migrations.AutoMigrateOrderItems(3, db); err != nil {
		log.Fatalf("Failed to migrate order_items table: %v", err)
	}
	if err := migrations.AutoMigrateFloors(3, db); err != nil {
		log.Fatalf("Failed to migrate floors table: %v", err)
	}
	if err := migrations.AutoMigrateTables(3, db); err != nil {
		log.Fatalf("Failed to migrate tables table: %v", err)
	}
	if err := migrations.AutoMigrateMenuItems(3, db); err != nil {
		log.Fatalf("Failed to migrate menu_items table: %v", err)
	}
	if err := migrations.AutoMigrateInvoices(3, db); err != nil {
		log.Fatalf("Failed to migrate invoices table: %v", err)
	}

	mongoClient, err := connectMongo(config.MongoURI())
	if err != nil {
		panic(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: config.RedisAddr(),
	})

	kafkaWriter := config.NewKafkaWriter("pos-events")

	posRepo := repository.NewRepository(db)
	menuSource := repository.NewMenuSource(mongoClient.Database(config.MongoDatabase()))
	publisher := service.NewKafkaPublisher(kafkaWriter)

	syncService := service.NewSyncService(posRepo, menuSource, publisher, service.NewSyncState(), rdb)
	if err := syncService.HydrateState(context.Background()); err != nil {
		log.Fatalf("Failed to hydrate sync state: %v", err)
	}

	scheduler := service.NewScheduler(syncService)
	scheduler.Start(30 * time.Second)
	defer scheduler.Stop()

	syncHandler := api.NewSyncHandler(scheduler)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(1),
				Burst:     3,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	// Sync controls are staff-only.
	sync := e.Group("/sync")
	sync.Use(echojwt.WithConfig(echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(api.JwtCustomClaims)
		},
		SigningKey: []byte(config.JWTSecret()),
	}))

	sync.POST("/start", syncHandler.StartSync)
	sync.POST("/stop", syncHandler.StopSync)
	sync.POST("/now", syncHandler.SyncNow)
	sync.GET("/status", syncHandler.GetStatus)

	e.GET("/sync/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "menu-sync-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":8084"))
}
