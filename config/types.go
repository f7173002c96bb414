package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           int   `yaml:"port" validate:"gt=0"`
	MaxUploadBytes int64 `yaml:"maxUploadBytes" validate:"gte=0"`
}

// User is one entry of the fixed credential registry.
type User struct {
	Username     string `yaml:"username" validate:"required"`
	PasswordHash string `yaml:"passwordHash" validate:"required"`
}

// AuthConfig contains token issuing configuration
type AuthConfig struct {
	Secret          string `yaml:"secret" validate:"required"`
	TokenTTLMinutes int    `yaml:"tokenTTLMinutes" validate:"gte=0"`
	Users           []User `yaml:"users" validate:"dive"`
}

// GeoConfig contains geospatial enrichment configuration
type GeoConfig struct {
	BaseLat        float64 `yaml:"baseLat" validate:"gte=-90,lte=90"`
	BaseLon        float64 `yaml:"baseLon" validate:"gte=-180,lte=180"`
	BaseAddress    string  `yaml:"baseAddress"`
	MinRadiusKM    float64 `yaml:"minRadiusKM" validate:"gte=0"`
	MaxRadiusKM    float64 `yaml:"maxRadiusKM" validate:"gte=0"`
	FarePerKM      float64 `yaml:"farePerKM" validate:"gte=0"`
	GeocoderURL    string  `yaml:"geocoderURL" validate:"omitempty,url"`
	RouterURL      string  `yaml:"routerURL" validate:"omitempty,url"`
	RequestDelayMS int     `yaml:"requestDelayMS" validate:"gte=0"`
	TimeoutMS      int     `yaml:"timeoutMS" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server ServerConfig `yaml:"server" validate:"required"`
	Auth   AuthConfig   `yaml:"auth"`
	Geo    GeoConfig    `yaml:"geo"`
}
