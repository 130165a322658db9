package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go-jobtracker-backend/pkg/auth"

	"github.com/joho/godotenv"
)

// Prints an HS256 access token signed with AUTH_JWT_SECRET for local testing.
func main() {
	sub := flag.String("sub", "local-user", "token subject (user id)")
	email := flag.String("email", "local@example.com", "email claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "AUTH_JWT_SECRET is not set")
		os.Exit(1)
	}

	token, err := auth.SignHS256(secret, *sub, *email, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
