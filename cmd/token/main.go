// Command token はローカル検証用のBearerトークンを発行します。
//
//	go run ./cmd/token -user <user-id> -email <email>
package main

import (
	"flag"
	"fmt"
	"os"

	"goal_tracker/internal/platform/config"
	jwtmw "goal_tracker/internal/platform/jwt"
)

func main() {
	userID := flag.String("user", "", "user id written to the sub claim")
	email := flag.String("email", "", "optional email claim")
	flag.Parse()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
		os.Exit(1)
	}
	if *userID == "" {
		fmt.Fprintln(os.Stderr, "-user is required")
		flag.Usage()
		os.Exit(2)
	}

	token, err := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiry).GenerateToken(*userID, *email)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
