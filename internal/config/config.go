package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                         string
	MongoURI                     string
	MongoDatabase                string
	EntryCollection              string
	PhotoCollection              string
	PingCollection               string
	FailedNotificationCollection string
	Timeout                      time.Duration
	Timezone                     string
	ServerLog                    *log.Logger
	JWTConfigs                   []JWTConfig
	JWTAudience                  string
	MessengerEndpoint            string
	MessengerDestination         string
	MessengerTimeout             time.Duration
	AdminEntryBaseURL            string
	AllowedOrigins               []string
	GeocoderEndpoint             string
	GeocoderAPIKey               string
	GeocoderTimeout              time.Duration
	ContestBounds                string
	EntryNumberMax               int
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	messengerEndpoint := strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_URL"))
	if messengerEndpoint == "" {
		messengerEndpoint = "http://messenger-gateway:3000"
	}

	messengerDestination := strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_DESTINATION"))
	if messengerDestination == "" {
		messengerDestination = "line"
	}

	messengerTimeout := 3 * time.Second
	if raw := strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			messengerTimeout = parsed
		}
	}

	geocoderEndpoint := strings.TrimSpace(os.Getenv("GEOCODER_ENDPOINT"))
	if geocoderEndpoint == "" {
		geocoderEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"
	}
	geocoderAPIKey := strings.TrimSpace(os.Getenv("GEOCODER_API_KEY"))
	if geocoderAPIKey == "" {
		log.Fatal("GEOCODER_API_KEY must be configured")
	}
	geocoderTimeout := 5 * time.Second
	if raw := strings.TrimSpace(os.Getenv("GEOCODER_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			geocoderTimeout = parsed
		}
	}

	entryNumberMax := 0
	if raw := strings.TrimSpace(os.Getenv("ENTRY_NUMBER_MAX")); raw != "" {
		if parsed, ok := parsePositiveInt(raw); ok {
			entryNumberMax = parsed
		}
	}

	allowedOrigins := parseList("API_ALLOWED_ORIGINS", []string{"*"})
	adminEntryBaseURL := strings.TrimSpace(os.Getenv("ADMIN_ENTRY_BASE_URL"))

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("AUTH_LINE_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_LINE_JWT_ISSUER", "illumi-contest-auth"),
			Secret: []byte(secret),
		})
	}
	if secret := strings.TrimSpace(os.Getenv("AUTH_GOOGLE_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_GOOGLE_JWT_ISSUER", "auth-google"),
			Secret: []byte(secret),
		})
	}

	if len(jwtConfigs) == 0 {
		log.Fatal("JWT secrets not configured. Set AUTH_LINE_JWT_SECRET or AUTH_GOOGLE_JWT_SECRET.")
	}

	jwtAudience := strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE"))
	if jwtAudience == "" {
		jwtAudience = strings.TrimSpace(os.Getenv("AUTH_LINE_JWT_AUDIENCE"))
	}
	if jwtAudience == "" {
		jwtAudience = strings.TrimSpace(os.Getenv("AUTH_GOOGLE_JWT_AUDIENCE"))
	}

	cfg := Config{
		Addr:                         envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:                     envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:                envOrDefault("MONGO_DB", "illumi-contest"),
		EntryCollection:              envOrDefault("ENTRY_COLLECTION", "entries"),
		PhotoCollection:              envOrDefault("PHOTO_COLLECTION", "entry_photos"),
		PingCollection:               envOrDefault("PING_COLLECTION", "pings"),
		FailedNotificationCollection: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
		Timeout:                      timeout,
		Timezone:                     envOrDefault("TIMEZONE", "Asia/Tokyo"),
		ServerLog:                    log.New(os.Stdout, "[illumi-contest-api] ", log.LstdFlags|log.Lshortfile),
		JWTConfigs:                   jwtConfigs,
		JWTAudience:                  jwtAudience,
		MessengerEndpoint:            messengerEndpoint,
		MessengerDestination:         messengerDestination,
		MessengerTimeout:             messengerTimeout,
		AdminEntryBaseURL:            adminEntryBaseURL,
		AllowedOrigins:               allowedOrigins,
		GeocoderEndpoint:             geocoderEndpoint,
		GeocoderAPIKey:               geocoderAPIKey,
		GeocoderTimeout:              geocoderTimeout,
		ContestBounds:                strings.TrimSpace(os.Getenv("CONTEST_BOUNDS")),
		EntryNumberMax:               entryNumberMax,
	}

	cfg.ServerLog.Printf("loaded config: adminEntryBaseURL=%q messengerEndpoint=%q destination=%q bounds=%q", adminEntryBaseURL, messengerEndpoint, messengerDestination, cfg.ContestBounds)

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parsePositiveInt(raw string) (int, bool) {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
