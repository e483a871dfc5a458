package config

import (
	"flag"
	"os"
	"time"

	"github.com/mealy-app/backend/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      identity token validity, minutes
//	-n string   nutrition API URL
//	-k string   nutrition API key (empty disables enrichment)
//	-o string   nutrition API host header
//	-m string   admin notification recipient (empty disables mail)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-n", "-k", "-o", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.StringVar(&config.NutritionAPIURL, "n", config.NutritionAPIURL, "nutrition API URL")
	fs.StringVar(&config.NutritionAPIKey, "k", config.NutritionAPIKey, "nutrition API key")
	fs.StringVar(&config.NutritionAPIHost, "o", config.NutritionAPIHost, "nutrition API host header")
	fs.StringVar(&config.MailAdminTo, "m", config.MailAdminTo, "admin notification recipient")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Minute
}
