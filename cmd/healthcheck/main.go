package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

func main() {
	ready := flag.Bool("ready", false, "Check /readyz instead of /healthz")
	flag.Parse()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}

	path := "/healthz"
	if *ready {
		path = "/readyz"
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://localhost:%s%s", port, path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "healthcheck failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "healthcheck failed: %s returned status %d\n", path, resp.StatusCode)
		os.Exit(1)
	}
}
