package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Mongo struct {
		URI      string        `yaml:"uri"`
		Database string        `yaml:"database"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"mongo"`

	Images struct {
		CacheFile string  `yaml:"cache_file"`
		BaseURL   string  `yaml:"base_url"`
		CX        string  `yaml:"cx"`
		ReqPerSec float64 `yaml:"req_per_sec"`
		Burst     int     `yaml:"burst"`
	} `yaml:"images"`
}

func Default() Config {
	var cfg Config
	cfg.App.Port = 8000
	cfg.App.DataDir = "."
	cfg.Mongo.URI = "mongodb://localhost:27017"
	cfg.Mongo.Database = "jobportal"
	cfg.Mongo.Timeout = 10 * time.Second
	cfg.Images.CacheFile = "models/image.json"
	cfg.Images.BaseURL = "https://www.googleapis.com/customsearch/v1"
	cfg.Images.ReqPerSec = 2
	cfg.Images.Burst = 2
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, Validate(cfg)
}
