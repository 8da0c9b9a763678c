package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/authkernel/internal/flagx"
	"github.com/dmitrijs2005/authkernel/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Pointer fields
// tell "absent" apart from "zero", so a partial file only overrides what it
// names.
type JsonConfig struct {
	HTTPAddr      *string         `json:"http_addr"`
	GRPCAddr      *string         `json:"grpc_addr"`
	Store         *string         `json:"store"`
	DatabaseDSN   *string         `json:"database_dsn"`
	RedisAddr     *string         `json:"redis_addr"`
	RedisPassword *string         `json:"redis_password"`
	SecretKey     *string         `json:"secret_key"`
	TokenValidity *timex.Duration `json:"token_validity"`
	Issuer        *string         `json:"issuer"`
	BcryptCost    *int            `json:"bcrypt_cost"`
	LogFormat     *string         `json:"log_format"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// parseJson overlays values from the file named by -c/-config, if any.
// An unreadable file or invalid JSON panics: the process must not start
// with a half-applied configuration.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.Store, c.Store)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.Issuer, c.Issuer)
	setString(&config.LogFormat, c.LogFormat)
	if c.TokenValidity != nil {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
}
