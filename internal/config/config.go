package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr        string // API bind address, e.g., "127.0.0.1:8080" (local) or ":8080" (Docker)
	LogDir      string // operational (zap) logs directory
	SitesFile   string // registry JSON, the list of monitored pages
	EventLog    string // append-only event log; defaults to <SnapshotDir>/log.txt

	SnapshotBackend string // file | sqlite | postgres | memory
	SnapshotDir     string // file backend
	SQLitePath      string // sqlite backend
	DatabaseURL     string // postgres backend

	FetchTimeout  time.Duration
	UserAgent     string // empty means the built-in default
	CheckInterval time.Duration // 0 disables the background watcher
	Concurrency   int

	SlackWebhook string

	PublicAPIKeys []string
	AdminAPIKeys  []string
	RateLimitRPM  int
	RateBurst     int
}

func FromEnv() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	sitesFile := os.Getenv("SITES_FILE")
	if sitesFile == "" {
		sitesFile = "data/sites.json"
	}

	backend := strings.ToLower(strings.TrimSpace(os.Getenv("SNAPSHOT_BACKEND")))
	if backend == "" {
		backend = "file"
	}

	snapshotDir := os.Getenv("SNAPSHOT_DIR")
	if snapshotDir == "" {
		snapshotDir = "data/snapshots"
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "data/snapshots.db"
	}

	// The event log lives next to the snapshots unless placed explicitly.
	eventLog := os.Getenv("EVENT_LOG_FILE")
	if eventLog == "" {
		eventLog = filepath.Join(snapshotDir, "log.txt")
	}

	fetchTimeout := 10 * time.Second
	if v := os.Getenv("FETCH_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			fetchTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	checkInterval := 5 * time.Minute
	if v := os.Getenv("CHECK_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			checkInterval = time.Duration(ms) * time.Millisecond
		}
	}

	concurrency := 1
	if v := os.Getenv("MAX_CONCURRENT_CHECKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			concurrency = n
		}
	}

	rpm := 120
	if v := os.Getenv("RATE_LIMIT_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			rpm = n
		}
	}
	burst := 60
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			burst = n
		}
	}

	return Config{
		Addr:            addr,
		LogDir:          logDir,
		SitesFile:       sitesFile,
		EventLog:        eventLog,
		SnapshotBackend: backend,
		SnapshotDir:     snapshotDir,
		SQLitePath:      sqlitePath,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		FetchTimeout:    fetchTimeout,
		UserAgent:       os.Getenv("USER_AGENT"),
		CheckInterval:   checkInterval,
		Concurrency:     concurrency,
		SlackWebhook:    os.Getenv("SLACK_WEBHOOK_URL"),
		PublicAPIKeys:   splitKeys(os.Getenv("PUBLIC_API_KEYS")),
		AdminAPIKeys:    splitKeys(os.Getenv("ADMIN_API_KEYS")),
		RateLimitRPM:    rpm,
		RateBurst:       burst,
	}
}

func splitKeys(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
