package config

import (
	"fmt"
	"strconv"
)

// parseEnv overlays the variables the service has always been deployed with:
//
//	PORT          listen port (binds on all interfaces)
//	DATABASE_DSN  PostgreSQL DSN; MONGO_URI is read as a legacy alias but
//	              must hold a postgres URL too
//	AUTH_JWT      JWT signing secret
//	BCRYPT_COST   password hashing work factor
//	LOG_LEVEL     debug|info|warn|error
func parseEnv(config *Config, lookupEnv func(string) (string, bool)) error {
	if lookupEnv == nil {
		return nil
	}

	if port, ok := lookupEnv("PORT"); ok && port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		config.EndpointAddrHTTP = ":" + port
	}

	if dsn, ok := lookupEnv("MONGO_URI"); ok {
		config.DatabaseDSN = dsn
	}
	if dsn, ok := lookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = dsn
	}

	if secret, ok := lookupEnv("AUTH_JWT"); ok && secret != "" {
		config.SecretKey = secret
	}

	if cost, ok := lookupEnv("BCRYPT_COST"); ok && cost != "" {
		n, err := strconv.Atoi(cost)
		if err != nil {
			return fmt.Errorf("invalid BCRYPT_COST %q: %w", cost, err)
		}
		config.BcryptCost = n
	}

	if level, ok := lookupEnv("LOG_LEVEL"); ok && level != "" {
		config.LogLevel = level
	}

	return nil
}
