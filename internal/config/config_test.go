package config

import (
	"testing"
	"time"
)

func TestFromEnv_ParsesAndDefaults(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("LOG_DIR", "./_testlogs")
	t.Setenv("SITES_FILE", "/tmp/sites.json")
	t.Setenv("SNAPSHOT_BACKEND", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/snap.db")
	t.Setenv("FETCH_TIMEOUT_MS", "1234")
	t.Setenv("CHECK_INTERVAL_MS", "0")
	t.Setenv("MAX_CONCURRENT_CHECKS", "7")
	t.Setenv("PUBLIC_API_KEYS", "pub_a, pub_b")
	t.Setenv("ADMIN_API_KEYS", "adm_x")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.invalid/x")

	cfg := FromEnv()

	if cfg.Addr != ":9090" || cfg.LogDir != "./_testlogs" {
		t.Fatalf("addr/logdir wrong: %+v", cfg)
	}
	if cfg.SitesFile != "/tmp/sites.json" {
		t.Fatalf("sites file wrong: %q", cfg.SitesFile)
	}
	if cfg.SnapshotBackend != "sqlite" || cfg.SQLitePath != "/tmp/snap.db" {
		t.Fatalf("backend wrong: %+v", cfg)
	}
	if cfg.FetchTimeout != 1234*time.Millisecond {
		t.Fatalf("fetch timeout wrong: %v", cfg.FetchTimeout)
	}
	if cfg.CheckInterval != 0 {
		t.Fatalf("interval 0 should disable the watcher: %v", cfg.CheckInterval)
	}
	if cfg.Concurrency != 7 {
		t.Fatalf("concurrency wrong: %d", cfg.Concurrency)
	}
	if len(cfg.PublicAPIKeys) != 2 || cfg.PublicAPIKeys[0] != "pub_a" {
		t.Fatalf("public keys wrong: %+v", cfg.PublicAPIKeys)
	}
	if len(cfg.AdminAPIKeys) != 1 || cfg.AdminAPIKeys[0] != "adm_x" {
		t.Fatalf("admin keys wrong: %+v", cfg.AdminAPIKeys)
	}
	if cfg.SlackWebhook == "" {
		t.Fatalf("slack webhook not read")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"ADDR", "LOG_DIR", "SITES_FILE", "SNAPSHOT_BACKEND", "SNAPSHOT_DIR",
		"SQLITE_PATH", "EVENT_LOG_FILE", "FETCH_TIMEOUT_MS", "CHECK_INTERVAL_MS",
		"MAX_CONCURRENT_CHECKS", "PUBLIC_API_KEYS", "ADMIN_API_KEYS",
	} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	if cfg.SnapshotBackend != "file" {
		t.Fatalf("default backend wrong: %q", cfg.SnapshotBackend)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Fatalf("default timeout wrong: %v", cfg.FetchTimeout)
	}
	if cfg.EventLog != "data/snapshots/log.txt" {
		t.Fatalf("event log should default next to snapshots: %q", cfg.EventLog)
	}
	if cfg.Concurrency != 1 {
		t.Fatalf("default is sequential: %d", cfg.Concurrency)
	}
	if cfg.PublicAPIKeys != nil || cfg.AdminAPIKeys != nil {
		t.Fatalf("keys should default to nil: %+v", cfg)
	}

	// Garbage values fall back rather than crash.
	t.Setenv("FETCH_TIMEOUT_MS", "not-a-number")
	t.Setenv("MAX_CONCURRENT_CHECKS", "-3")
	cfg = FromEnv()
	if cfg.FetchTimeout != 10*time.Second || cfg.Concurrency != 1 {
		t.Fatalf("bad env did not fall back: %+v", cfg)
	}
}
