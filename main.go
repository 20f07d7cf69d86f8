package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"quizbuilder_backend/internals/configs"
	database "quizbuilder_backend/internals/databases"
	repository "quizbuilder_backend/internals/features/quizzes/repository"
	helper "quizbuilder_backend/internals/helpers"
	middlewares "quizbuilder_backend/internals/middlewares"
	routes "quizbuilder_backend/internals/route"
	"quizbuilder_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromError(c, err)
		},
	})

	middlewares.SetupMiddlewares(app, middlewares.Options{
		CorsAllowOrigins: configs.CorsAllowOrigins,
		RateLimitMax:     configs.RateLimitMax,
		RequestTimeout:   configs.HTTPRequestTimeout,
	})

	// 🔌 store: SQL (postgres/mysql) atau memory
	repo, db, err := openRepository(configs.DBDriver)
	if err != nil {
		log.Fatalf("❌ store init failed: %v", err)
	}

	if configs.SeedFile != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := seeds.SeedQuizzesFromYAML(ctx, repo, configs.SeedFile); err != nil {
			log.Errorf("❌ seeding failed: %v", err)
		}
		cancel()
	}

	// ✅ Routes
	routes.SetupRoutes(app, repo)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Infof("✅ Listening on :%s", configs.Port)
		if err := app.Listen("0.0.0.0:" + configs.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close(db)
}

func openRepository(driver string) (repository.QuizRepository, *gorm.DB, error) {
	if driver == "memory" {
		log.Warn("⚠️ DB_DRIVER=memory: data hilang saat server berhenti")
		repo, err := repository.NewMemoryRepository()
		return repo, nil, err
	}

	db, err := database.ConnectDB(driver)
	if err != nil {
		return nil, nil, err
	}
	database.TunePool(db)
	if configs.DBAutoMigrate {
		if err := database.Migrate(db); err != nil {
			database.Close(db)
			return nil, nil, err
		}
		log.Info("✅ migration done")
	}
	database.WarmUpQueries(db)
	return repository.NewGormRepository(db), db, nil
}
