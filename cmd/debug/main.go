package main

import (
	"bufio"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
)

// debug tails the server's live event stream and prints every SSE frame.
// Filter with a comma-separated list of event types:
//
//	go run ./cmd/debug badge.granted,tournament.scored
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	url := apiURL + "/api/v1/events"
	if len(os.Args) > 1 {
		url += "?types=" + os.Args[1]
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		log.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("X-API-Key", os.Getenv("API_KEY"))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Unexpected status %d from %s", resp.StatusCode, url)
	}

	log.Printf("Connected to %s, streaming events (Ctrl+C to stop)", url)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		resp.Body.Close()
	}()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			fmt.Println()
			continue
		}
		// Highlight the frame type so interleaved payloads stay readable
		if strings.HasPrefix(line, "event:") {
			fmt.Printf("\n%s\n", line)
		} else {
			fmt.Println(line)
		}
	}
	if err := scanner.Err(); err != nil && !strings.Contains(err.Error(), "closed") {
		log.Printf("Stream ended: %v", err)
	}
}
