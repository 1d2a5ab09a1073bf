package config

import (
	"errors"
	"strings"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if strings.TrimSpace(cfg.Mongo.URI) == "" {
		errs = append(errs, "mongo.uri is required")
	}
	if strings.TrimSpace(cfg.Mongo.Database) == "" {
		errs = append(errs, "mongo.database is required")
	}
	if cfg.Mongo.Timeout < 0 {
		errs = append(errs, "mongo.timeout must be >= 0")
	}
	if strings.TrimSpace(cfg.Images.CacheFile) == "" {
		errs = append(errs, "images.cache_file is required")
	}
	if cfg.Images.ReqPerSec < 0 {
		errs = append(errs, "images.req_per_sec must be >= 0")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}
