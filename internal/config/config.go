package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Telegram TelegramConfig
	Download DownloadConfig
	Log      LogConfig

	// AllowedUserIDs limits who may use the bot; empty means everyone.
	AllowedUserIDs []int64

	// SessionTTL bounds how long a half-finished selection survives before
	// the user is asked to resend the link.
	SessionTTL time.Duration
}

type TelegramConfig struct {
	Token string
	// APIEndpoint overrides api.telegram.org for self-hosted bot API servers.
	APIEndpoint string
}

type DownloadConfig struct {
	BaseDir     string
	CookiesFile string
	Parallelism int
	AutoCleanup bool
	// MaxFileBytes caps what gets sent back through the chat; 0 means no cap.
	MaxFileBytes int64
	YtDlpPath    string
}

type LogConfig struct {
	FilePath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		Telegram: TelegramConfig{
			Token:       getEnv("BOT_TOKEN", ""),
			APIEndpoint: getEnv("BOT_API_URL", ""),
		},
		Download: DownloadConfig{
			BaseDir:      getEnv("DOWNLOAD_DIR", "downloads"),
			CookiesFile:  getEnv("COOKIES_FILE", ""),
			Parallelism:  getEnvAsInt("PARALLEL_DOWNLOADS", 4),
			AutoCleanup:  getEnvAsBool("AUTO_CLEANUP", true),
			MaxFileBytes: int64(getEnvAsInt("MAX_FILE_MB", 0)) * 1024 * 1024,
			YtDlpPath:    getEnv("YTDLP_PATH", "yt-dlp"),
		},
		Log: LogConfig{
			FilePath: getEnv("LOG_FILE_PATH", "logs/ytbot.log"),
		},
		AllowedUserIDs: parseIDList(getEnv("ALLOWED_USER_IDS", "")),
		SessionTTL:     time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 30)) * time.Minute,
	}
}

func parseIDList(raw string) []int64 {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			log.Printf("Ignoring invalid user id %q in ALLOWED_USER_IDS", part)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strings.ToLower(strValue)); err == nil {
		return value
	}
	return fallback
}
