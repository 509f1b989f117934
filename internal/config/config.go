package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// Config carries everything read from the environment at startup.
type Config struct {
	HTTPAddr string
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	// Mailing
	SendGridAPIKey string
	MailFrom       string
	MailFromName   string

	// Notification texts
	Lang       string
	LocalePath string

	// Telegram owner alerts (optional; empty token disables the bot)
	TelegramBotToken    string
	TelegramOwnerChatID int64

	// Video catalog refresh
	YouTubeAPIKey    string
	YouTubeChannelID string
	VideoRefreshSpec string

	// PublicBaseURL is used to build the join link sent in validation mails.
	PublicBaseURL string

	// Timezone in which scheduled slots are interpreted.
	Timezone *time.Location
}

func Load() Config {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			getenv("DB_HOST", "localhost"),
			getenv("DB_USER", "user"),
			getenv("DB_PASSWORD", "password"),
			getenv("DB_NAME", "visioblogdb"),
			getenv("DB_PORT", "5432"),
		)
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	var ownerChatID int64
	if v := os.Getenv("TELEGRAM_OWNER_CHAT_ID"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Printf("Warning: invalid TELEGRAM_OWNER_CHAT_ID %q, Telegram alerts disabled", v)
		} else {
			ownerChatID = n
		}
	}

	loc := time.UTC
	if v := os.Getenv("TIMEZONE"); v != "" {
		l, err := time.LoadLocation(v)
		if err != nil {
			log.Printf("Warning: unknown TIMEZONE %q, falling back to UTC", v)
		} else {
			loc = l
		}
	}

	return Config{
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),
		DBDSN:    dsn,

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		JWTSecret: getenv("JWT_SECRET", "dev-secret-change-me"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       getenv("MAIL_FROM", "support@visioblog.local"),
		MailFromName:   getenv("MAIL_FROM_NAME", "The blog team"),

		Lang:       getenv("NOTIFICATION_LANG", "fr"),
		LocalePath: getenv("LOCALE_PATH", "internal/localization"),

		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramOwnerChatID: ownerChatID,

		YouTubeAPIKey:    os.Getenv("YOUTUBE_API"),
		YouTubeChannelID: os.Getenv("ID_CHANNEL"),
		VideoRefreshSpec: getenv("VIDEO_REFRESH_SPEC", "@every 12h"),

		PublicBaseURL: getenv("PUBLIC_BASE_URL", "http://localhost:8080"),

		Timezone: loc,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
