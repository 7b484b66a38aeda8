// Command mint_admin generates the bcrypt hash for ADMIN_PASSWORD_HASH and,
// optionally, a ready-to-use admin JWT for debugging API calls.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/franchisepulse/backend/pkg/auth"
	"github.com/franchisepulse/backend/pkg/config"
	"github.com/franchisepulse/backend/pkg/utils"
)

func main() {
	withToken := flag.Bool("token", false, "also mint an admin JWT (uses JWT_SECRET and ADMIN_EMAIL)")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("Usage: mint_admin [-token] <password>")
	}
	password := flag.Arg(0)

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)

	if *withToken {
		config.LoadDotEnv()
		session := auth.UserSession{
			ID:    utils.GenerateID(),
			Email: config.String("ADMIN_EMAIL", "admin@franchisepulse.local"),
			Role:  auth.RoleAdmin,
		}
		token, err := auth.GenerateToken(session)
		if err != nil {
			log.Fatalf("Failed to generate token: %v", err)
		}
		fmt.Printf("\nAuthorization: Bearer %s\n", token)
	}
}
