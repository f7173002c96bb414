package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads and validates the application configuration. An empty path
// falls back to config.yml in the working directory.
func Load(path string) (AppConfig, error) {
	paths := []string{path}
	if path == "" {
		paths = []string{"config.yml", "./config/config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.Geo); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.Auth); err != nil {
		return AppConfig{}, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// Default returns the built-in configuration used when no config file is
// given (oneshot CLI runs and tests).
func Default() AppConfig {
	var cfg AppConfig
	cfg.Server.Port = 8080
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = 10 << 20
	}
	if cfg.Auth.TokenTTLMinutes == 0 {
		cfg.Auth.TokenTTLMinutes = 60
	}
	if cfg.Geo.BaseLat == 0 && cfg.Geo.BaseLon == 0 {
		cfg.Geo.BaseLat = 51.2467
		cfg.Geo.BaseLon = 6.3735
	}
	if cfg.Geo.BaseAddress == "" {
		cfg.Geo.BaseAddress = "Gladbacher Strasse 189, 41747 Viersen, Germany"
	}
	if cfg.Geo.MinRadiusKM == 0 {
		cfg.Geo.MinRadiusKM = 2
	}
	if cfg.Geo.MaxRadiusKM == 0 {
		cfg.Geo.MaxRadiusKM = 10
	}
	if cfg.Geo.FarePerKM == 0 {
		cfg.Geo.FarePerKM = 1.5
	}
	if cfg.Geo.GeocoderURL == "" {
		cfg.Geo.GeocoderURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geo.RouterURL == "" {
		cfg.Geo.RouterURL = "https://router.project-osrm.org"
	}
	if cfg.Geo.RequestDelayMS == 0 {
		cfg.Geo.RequestDelayMS = 1000
	}
	if cfg.Geo.TimeoutMS == 0 {
		cfg.Geo.TimeoutMS = 15000
	}
}
