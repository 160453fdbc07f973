package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/example/medovik/internal/cartstore"
	"github.com/example/medovik/internal/config"
	"github.com/example/medovik/internal/database"
	"github.com/example/medovik/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	app := fiber.New(fiber.Config{
		AppName: "Medovik Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, connectCartKV(cfg.RedisURL), cfg)

	if err := database.Seed(db); err != nil {
		log.Printf("catalog seed failed: %v", err)
	}

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}

// connectCartKV picks the cart persistence backend. An unreachable
// Redis degrades to in-memory carts instead of refusing to start.
func connectCartKV(redisURL string) cartstore.KV {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("invalid REDIS_URL, carts will not survive restarts: %v", err)
		return cartstore.NewMemoryKV()
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable, carts will not survive restarts: %v", err)
		return cartstore.NewMemoryKV()
	}

	return cartstore.NewRedisKV(rdb)
}
