package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Tasks
		Auth
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path string
	}

	Tasks struct {
		Enabled                 bool
		Workers                 int
		ReleaseAfter            time.Duration
		CleanupInterval         time.Duration
		OverdueSweepSchedule    string // Cron format: "0 * * * *" = hourly
		ActivityCleanupSchedule string // Cron format: "30 2 * * *" = daily at 02:30
		ActivityRetentionDays   int    // Days to keep activity log rows
	}

	Auth struct {
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_session_secret", "")      // CSRF disabled if empty
	v.SetDefault("auth_session_lifetime", "24h") // 24 hours
	v.SetDefault("auth_bcrypt_cost", 12)         // bcrypt cost factor
	v.SetDefault("auth_secure_cookies", true)    // HTTPS-only cookies

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("overdue_sweep_schedule", "0 * * * *")      // Hourly at :00
	v.SetDefault("activity_cleanup_schedule", "30 2 * * *")  // Daily at 02:30
	v.SetDefault("activity_retention_days", 90)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Tasks: Tasks{
			Enabled:                 v.GetBool("TASKS_ENABLED"),
			Workers:                 v.GetInt("TASK_WORKERS"),
			ReleaseAfter:            v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:         v.GetDuration("TASK_CLEANUP_INTERVAL"),
			OverdueSweepSchedule:    v.GetString("OVERDUE_SWEEP_SCHEDULE"),
			ActivityCleanupSchedule: v.GetString("ACTIVITY_CLEANUP_SCHEDULE"),
			ActivityRetentionDays:   v.GetInt("ACTIVITY_RETENTION_DAYS"),
		},
		Auth: Auth{
			SessionSecret:   v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime: v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:      v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),
		},
	}
}
