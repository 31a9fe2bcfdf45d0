package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays Config with FORUM_* environment variables. Unset
// variables leave fields as they are. Panics on malformed values.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
