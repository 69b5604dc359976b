// Command token mints an access token for local testing of the payroll API.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cmlabs-hris/studio-payroll/internal/config"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "user id recorded as processed_by on status changes")
	email := flag.String("email", "", "email claim")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(*userID, *email)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}
	fmt.Printf("%s\n# expires at %d\n", token, expiresAt)
}
