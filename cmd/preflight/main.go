// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	addr := strings.TrimSpace(os.Getenv("ADDR"))
	backend := strings.ToLower(strings.TrimSpace(os.Getenv("SNAPSHOT_BACKEND")))
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	sites := strings.TrimSpace(os.Getenv("SITES_FILE"))
	admin := strings.TrimSpace(os.Getenv("ADMIN_API_KEYS"))
	pub := strings.TrimSpace(os.Getenv("PUBLIC_API_KEYS"))
	slack := strings.TrimSpace(os.Getenv("SLACK_WEBHOOK_URL"))

	if backend == "postgres" && db == "" {
		fail("SNAPSHOT_BACKEND=postgres but DATABASE_URL is empty.")
	}
	if backend != "" {
		switch backend {
		case "file", "sqlite", "postgres", "memory":
			ok("SNAPSHOT_BACKEND=" + backend)
		default:
			fail("SNAPSHOT_BACKEND=" + backend + " is not one of file|sqlite|postgres|memory.")
		}
	} else {
		warn("SNAPSHOT_BACKEND empty — defaulting to the file backend.")
	}

	if backend == "memory" {
		warn("memory backend loses all snapshots on restart; every cycle after a restart reports 'initialized'.")
	}

	if admin == "" {
		warn("ADMIN_API_KEYS empty — POST /api/sites is open to anyone who can reach the API.")
	}
	if pub == "" {
		warn("PUBLIC_API_KEYS empty — read routes are open.")
	}
	// Normalize and sanity-check lists (no spaces around commas).
	for name, v := range map[string]string{"ADMIN_API_KEYS": admin, "PUBLIC_API_KEYS": pub} {
		if strings.Contains(v, " ") {
			warn(name + " contains spaces; use comma-separated with no spaces, e.g. key1,key2")
		}
	}

	if addr == "" {
		warn("ADDR is empty; default in your app may be used.")
	} else {
		ok("ADDR=" + addr)
	}

	if sites == "" {
		warn("SITES_FILE empty — default data/sites.json will be used.")
	} else {
		ok("SITES_FILE=" + sites)
	}

	if slack == "" {
		warn("SLACK_WEBHOOK_URL empty — keyword changes only go to the event log.")
	} else {
		ok("SLACK_WEBHOOK_URL present")
	}

	ok("preflight passed")
}
