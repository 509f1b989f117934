package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"visioblog/backend/internal/api/handler"
	"visioblog/backend/internal/config"
	"visioblog/backend/internal/lifecycle"
	"visioblog/backend/internal/localization"
	"visioblog/backend/internal/mailer"
	"visioblog/backend/internal/models"
	"visioblog/backend/internal/scheduler"
	"visioblog/backend/internal/storage"
	"visioblog/backend/internal/telegram"
	"visioblog/backend/internal/videos"
	"visioblog/backend/internal/visiohub"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.ChatRequest{},
		&models.Video{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting visioblog backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	localizer, err := localization.NewLocalizer(cfg.LocalePath)
	if err != nil {
		log.Fatalf("Failed to load notification texts: %v", err)
	}

	notifiers := []lifecycle.Notifier{
		mailer.NewService(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName, cfg.PublicBaseURL, cfg.Lang, localizer),
	}
	if cfg.TelegramBotToken != "" {
		botService, err := telegram.NewBotService(cfg.TelegramBotToken, cfg.TelegramOwnerChatID, s, localizer, cfg.Lang)
		if err != nil {
			log.Fatalf("Failed to start Telegram bot: %v", err)
		}
		notifiers = append(notifiers, botService)
		go botService.Run()
	}

	lc := lifecycle.NewService(s, cfg.Timezone, notifiers...)
	hub := visiohub.NewHub(s, cfg.Timezone)

	catalog := videos.NewCatalog(cfg.YouTubeAPIKey, cfg.YouTubeChannelID, s)
	sched, err := scheduler.NewScheduler(catalog, cfg.VideoRefreshSpec)
	if err != nil {
		log.Fatalf("Failed to set up scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	r := gin.Default()
	h := handler.NewHandler(hub, lc, s, cfg.JWTSecret)

	r.GET("/token", h.GetToken)
	r.GET("/videos", h.ListVideos)

	authed := r.Group("/", h.AuthRequired())
	authed.POST("/requests", h.CreateRequest)
	authed.GET("/requests", h.ListMyRequests)
	authed.GET("/ws/:request_id", h.ServeWebSocket)

	admin := authed.Group("/admin", h.AdminRequired())
	admin.GET("/requests/pending", h.ListPendingRequests)
	admin.POST("/requests/:id/validate", h.ValidateRequest)
	admin.POST("/requests/:id/refuse", h.RefuseRequest)
	admin.DELETE("/requests/:id", h.DeleteRequest)

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
