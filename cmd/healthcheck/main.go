// Package main provides a container health probe for the chatbot server.
// It exits 0 when the probed endpoint answers 200 and 1 otherwise.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/inculture/skopelos-chatbot/internal/config"
)

func main() {
	ready := flag.Bool("ready", false, "probe /readyz instead of /livez")
	flag.Parse()

	port := os.Getenv(config.EnvPort)
	if port == "" {
		port = "10000"
	}

	path := "/livez"
	if *ready {
		path = "/readyz"
	}

	client := &http.Client{Timeout: 8 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://localhost:%s%s", port, path))
	if err != nil {
		os.Exit(1)
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}
