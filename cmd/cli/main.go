package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Enter a site URL to monitor (e.g., https://example.com): ")
	raw, _ := reader.ReadString('\n')
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		fmt.Println("Invalid URL.")
		return
	}

	fmt.Print("Keywords to flag on change (comma-separated, optional): ")
	kwLine, _ := reader.ReadString('\n')
	var keywords []string
	for _, k := range strings.Split(kwLine, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}

	body, _ := json.Marshal(map[string]any{"url": raw, "keywords": keywords})
	resp, err := http.Post(api+"/api/sites", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Println("Error contacting API:", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Println("API returned status:", resp.Status)
		return
	}
	fmt.Println("Added! Check GET /api/sites for the full list.")

	fmt.Print("Run a check cycle now? [y/N]: ")
	answer, _ := reader.ReadString('\n')
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		return
	}

	resp2, err := http.Post(api+"/api/checks", "application/json", nil)
	if err != nil {
		fmt.Println("Error contacting API:", err)
		return
	}
	defer resp2.Body.Close()

	var results []struct {
		URL             string   `json:"url"`
		Status          string   `json:"status"`
		Details         string   `json:"details"`
		MatchedKeywords []string `json:"matched_keywords"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&results); err != nil {
		fmt.Println("Bad response:", err)
		return
	}
	for _, r := range results {
		line := r.Status + " | " + r.URL
		if len(r.MatchedKeywords) > 0 {
			line += " | keywords: " + strings.Join(r.MatchedKeywords, ", ")
		}
		if r.Details != "" {
			line += " | " + r.Details
		}
		fmt.Println(line)
	}
}
