package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"reporthub_backend/internals/configs"
	database "reporthub_backend/internals/databases"
	fyScheduler "reporthub_backend/internals/features/finance/financial_years/scheduler"
	middlewares "reporthub_backend/internals/middlewares"
	"reporthub_backend/internals/middlewares/logger"
	routes "reporthub_backend/internals/route"
	"reporthub_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            middlewares.ErrorHandler,
		BodyLimit:               bodyLimit(),
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// request id first so every later log line can carry it
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("request_id", id)
		start := time.Now()
		err := c.Next()
		c.Set("X-Response-Time", time.Since(start).String())
		return err
	})
	app.Use(middlewares.RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(middlewares.CorsMiddleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	if configs.GetBool("DB_AUTO_MIGRATE", false) {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("❌ migration failed: %v", err)
		}
	}
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := seeds.RunAllSeeds(database.DB, configs.GetEnv("SEED_DIR", "internals/seeds/data")); err != nil {
			log.Fatalf("❌ seeding failed: %v", err)
		}
		return
	}
	database.WarmUpQueries()
	database.ConnectRedis()

	// ⏱ scheduler after DB is ready
	rollover := fyScheduler.StartRolloverCron(database.DB)

	routes.SetupRoutes(app, database.DB, database.Redis)

	app.Server().ReadTimeout = 30 * time.Second
	app.Server().WriteTimeout = 60 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "8080")
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: stop cron, drain HTTP, close pools
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")

	<-rollover.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.CloseRedis()
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// multipart overhead on top of the upload cap
func bodyLimit() int {
	n := configs.UploadMaxBytes
	if n <= 0 {
		n = 10 * 1024 * 1024
	}
	return n + 1024*1024
}
