//go:build ignore

// Dev helper: wipes stored trend points so a fresh backfill starts clean.
// Run with: go run scripts/wipe_data.go
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		env("DB_USER", "root"),
		env("DB_PASSWORD", ""),
		env("DB_HOST", "127.0.0.1"),
		env("DB_PORT", "3306"),
		env("DB_DATABASE", "franchisepulse"))

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("Failed to open connection: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	log.Println("💣 Wiping trend_points...")

	if _, err := db.Exec("TRUNCATE TABLE trend_points"); err != nil {
		log.Fatalf("Failed to truncate: %v", err)
	}

	log.Println("✅ trend_points truncated.")
}
