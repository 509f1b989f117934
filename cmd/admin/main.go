// Command admin is the operator CLI for the video chat calendar: inspect
// requests, validate or refuse them, and manage the owner account, without
// going through the HTTP surface.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"visioblog/backend/internal/config"
	"visioblog/backend/internal/lifecycle"
	"visioblog/backend/internal/localization"
	"visioblog/backend/internal/mailer"
	"visioblog/backend/internal/models"
	"visioblog/backend/internal/storage"
	"visioblog/backend/internal/videos"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	s := storage.NewStorageService(db, nil) // no Redis needed for the CLI

	localizer, err := localization.NewLocalizer(cfg.LocalePath)
	if err != nil {
		log.Fatalf("failed to load notification texts: %v", err)
	}
	mail := mailer.NewService(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName, cfg.PublicBaseURL, cfg.Lang, localizer)
	lc := lifecycle.NewService(s, cfg.Timezone, mail)

	if len(os.Args) < 2 {
		usage()
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "list":
		status := models.StatusPending
		if len(os.Args) > 2 {
			status = models.RequestStatus(os.Args[2])
		}
		listRequests(s, status)

	case "validate":
		requireArg(3, "Usage: admin validate <request_id>")
		if err := lc.Validate(ctx, os.Args[2]); err != nil {
			log.Fatalf("Error validating request: %v", err)
		}
		fmt.Printf("Request %s has been validated.\n", os.Args[2])

	case "refuse":
		requireArg(3, "Usage: admin refuse <request_id>")
		if err := lc.Refuse(ctx, os.Args[2]); err != nil {
			log.Fatalf("Error refusing request: %v", err)
		}
		fmt.Printf("Request %s has been refused.\n", os.Args[2])

	case "delete":
		requireArg(3, "Usage: admin delete <request_id>")
		if err := lc.Delete(ctx, os.Args[2]); err != nil {
			log.Fatalf("Error deleting request: %v", err)
		}
		fmt.Printf("Request %s has been deleted.\n", os.Args[2])

	case "create-admin":
		requireArg(4, "Usage: admin create-admin <pseudo> <email>")
		admin := &models.Admin{Pseudo: os.Args[2], Email: os.Args[3]}
		if err := db.Create(admin).Error; err != nil {
			log.Fatalf("Error creating admin: %v", err)
		}
		fmt.Printf("Admin %s created with id %s.\n", admin.Pseudo, admin.ID)

	case "refresh-videos":
		catalog := videos.NewCatalog(cfg.YouTubeAPIKey, cfg.YouTubeChannelID, s)
		if err := catalog.Refresh(ctx); err != nil {
			log.Fatalf("Error refreshing video catalog: %v", err)
		}

	default:
		usage()
	}
}

func listRequests(s storage.Storage, status models.RequestStatus) {
	reqs, err := s.GetRequestsByStatus(status)
	if err != nil {
		log.Fatalf("Error listing requests: %v", err)
	}
	if len(reqs) == 0 {
		fmt.Printf("No %s requests.\n", status)
		return
	}
	for _, r := range reqs {
		fmt.Printf("%s  %s  %s %s  %s\n", r.ID, r.Pseudo, r.ScheduledDate, r.ScheduledTime, r.Status)
	}
}

func requireArg(n int, msg string) {
	if len(os.Args) < n {
		fmt.Println(msg)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: admin <list [status]|validate <id>|refuse <id>|delete <id>|create-admin <pseudo> <email>|refresh-videos>")
	os.Exit(1)
}
