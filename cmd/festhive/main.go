package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/EberechiLabs/FestHive/app/repository"
	"github.com/EberechiLabs/FestHive/internal/pkg/cache"
	"github.com/EberechiLabs/FestHive/internal/pkg/database"
	"github.com/EberechiLabs/FestHive/internal/pkg/env"
	"github.com/EberechiLabs/FestHive/internal/pkg/jobqueue"
	"github.com/EberechiLabs/FestHive/internal/pkg/metrics/counter"
	"github.com/EberechiLabs/FestHive/internal/pkg/payments"
	"github.com/EberechiLabs/FestHive/internal/pkg/referral"
	"github.com/EberechiLabs/FestHive/internal/pkg/router"
	"github.com/EberechiLabs/FestHive/internal/pkg/storage"
)

func main() {
	app, queue := NewApplication()

	queue.Start()
	defer queue.Stop()

	// Periodic page view flush to the database
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if err := counter.FlushAll(); err != nil {
				log.Printf("flushing view counters: %v", err)
			}
		}
	}()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "8080")))
	log.Fatal(err)
}

// NewApplication wires the full service graph and returns the fiber app with
// the mail queue used for background sends.
func NewApplication() (*fiber.App, *jobqueue.Queue) {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/festhive to project root
		"../../../", // Fallback
	}

	// Find the correct base path
	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "views"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}

	if basePath == "" {
		panic("Could not find project root directory")
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		Views:     html.New(basePath+"views", ".html"),
		BodyLimit: 20 * 1024 * 1024, // contestant photos and vendor logos
	})

	// ignore and cache favicon
	app.Use(favicon.New(favicon.Config{
		File:         basePath + "public/assets/icons/favicon.ico",
		URL:          "/favicon.ico",
		CacheControl: "public, max-age=604800",
	}))

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	// static files
	app.Static("/", basePath+"public/assets", fiber.Static{
		CacheDuration: 15 * time.Second,
		Compress:      true,
	})

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// SERVICE GRAPH
	db := database.GetDB()
	repos := repository.NewRepositories(db)

	queue := jobqueue.NewQueue(2)
	notifier := jobqueue.NewMailNotifier(queue)

	referralSvc := referral.NewServiceFromDB(db)
	confirmer := repository.NewDomainConfirmer(repos, referralSvc)
	paymentSvc := payments.NewServiceFromDB(db, confirmer, notifier)

	var media *storage.Client
	mediaCfg := storage.LoadConfig()
	if mediaCfg.IsEnabled() {
		client, err := storage.NewClient(mediaCfg)
		if err != nil {
			log.Printf("media storage unavailable: %v", err)
		} else {
			media = client
		}
	}

	// ROUTER
	router.InstallRouter(app, &router.Deps{
		Repos:    repos,
		Payments: paymentSvc,
		Referral: referralSvc,
		Queue:    queue,
		Media:    media,
	})

	return app, queue
}
