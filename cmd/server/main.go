package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"
	config "github.com/serenata/whistleblower/configs"
	"github.com/serenata/whistleblower/internal/api/handlers"
	"github.com/serenata/whistleblower/internal/api/middleware"
	job "github.com/serenata/whistleblower/internal/jobs"
	"github.com/serenata/whistleblower/internal/profiles"
	"github.com/serenata/whistleblower/internal/queue"
	"github.com/serenata/whistleblower/internal/repository"
	"github.com/serenata/whistleblower/internal/service"
	"github.com/serenata/whistleblower/internal/twitter"
	"github.com/serenata/whistleblower/pkg/crop"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database %s is unreachable: %v", cfg.DatabaseName, err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	postedTweetRepo := repository.NewPostedTweetRepository(db)
	dataset := profiles.NewDataset(cfg.SocialAccountsFile)
	twitterClient := twitter.NewClient(*cfg)
	resolver := twitter.NewLinkResolver(&http.Client{Timeout: 30 * time.Second})

	imageService := service.NewImageService(*cfg, &http.Client{Timeout: 2 * time.Minute}, service.NewFitzRenderer(), crop.NewTrimmer())
	builder := service.NewTweetBuilder(*cfg, imageService)
	archiveService := service.NewArchiveService(*cfg)
	suspicionsService := service.NewSuspicionsService(*cfg)
	twitterService := service.NewTwitterService(*cfg, twitterClient, postedTweetRepo, dataset, builder, resolver, archiveService)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	admin := handlers.NewAdminHandler(twitterService, postedTweetRepo)
	app.Get("/healthz", admin.Health)

	api := app.Group("/admin")
	api.Use(authMiddleware.AuthMiddleware())
	api.Post("/provision", admin.Provision)
	api.Post("/follow", admin.Follow)
	api.Get("/posts", admin.ListPosts)

	// cron jobs
	postQueueJob := job.NewPostQueueJob(suspicionsService, twitterService, client)

	// queue
	queueW := queue.NewQueue(twitterService)

	c := cron.New()
	c.AddFunc("@every 01h00m00s", postQueueJob.PostQueue)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 1, // tweets go out one at a time
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishTweet, queueW.HandlePublishTweetTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(cfg.ServerAddr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on %s", cfg.ServerAddr)

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
