package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ericogr/dungeon-party/internal/config"
	"github.com/ericogr/dungeon-party/internal/constants"
)

func main() {
	addr := ":8080"
	if cfg, err := config.LoadServer(); err == nil {
		addr = cfg.Address
	}
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + constants.RouteAPIPrefix + constants.RouteVersion)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
