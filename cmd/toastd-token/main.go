// Command toastd-token prints a bearer token for the board control endpoints,
// signed with BOARD_AUTH_SECRET.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/dmitrymomot/toastkit/modules/board"
	"github.com/dmitrymomot/toastkit/pkg/config"
)

func main() {
	subject := flag.String("subject", "operator", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	var cfg board.Config
	if err := config.Load(&cfg); err != nil {
		log.Fatalf("Failed to load board config: %v", err)
	}

	token, err := board.SignToken(cfg.AuthSecret, *subject, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
