package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/authkernel/internal/flagx"
)

var flagNames = []string{"a", "g", "store", "d", "r", "redis-password", "s", "t", "issuer", "bcrypt-cost", "log-format"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string               HTTP bind address (e.g. ":8080")
//	-g string               gRPC bind address (e.g. ":50051")
//	-store string           credential store: memory, postgres or redis
//	-d string               PostgreSQL DSN
//	-r string               Redis address
//	-redis-password string  Redis password
//	-s string               token HMAC secret
//	-t int                  token validity, minutes
//	-issuer string          token issuer claim
//	-bcrypt-cost int        bcrypt work factor
//	-log-format string      json or text
//
// Arguments not listed above are ignored, so the JSON config flags can share
// the command line.
func parseFlags(config *Config, args []string) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port")
	fs.StringVar(&config.Store, "store", config.Store, "credential store (memory|postgres|redis)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.RedisPassword, "redis-password", config.RedisPassword, "redis password")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidity.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.Issuer, "issuer", config.Issuer, "token issuer")
	fs.IntVar(&config.BcryptCost, "bcrypt-cost", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log format (json|text)")

	if err := fs.Parse(flagx.FilterArgs(args, flagNames...)); err != nil {
		panic(err)
	}

	// only an explicit -t overrides, so sub-minute values from JSON survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidity = time.Duration(*tokenValidity) * time.Minute
		}
	})
}
