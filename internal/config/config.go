// Package config provides configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Store backend selectors.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	Port          string
	AllowedOrigin string

	// Challenge board geometry.
	CanvasWidth  int
	CanvasHeight int
	ShapeCount   int
	MinShapeSize int
	MaxShapeSize int
	ShapeMargin  int
	// MaxPlacementAttempts caps retries when placing a single shape.
	MaxPlacementAttempts int
	// MaxLayoutRetries caps whole-board regeneration.
	MaxLayoutRetries int

	// Rendering.
	ScaleFactor       int
	NoiseLines        int
	PointNoiseDensity float64

	// Lifecycle.
	ChallengeTTLSeconds int
	StoreBackend        string
	SQLitePath          string

	// Optional S3 image publishing.
	AWSRegion        string
	S3Bucket         string
	CloudfrontDomain string

	DefaultLanguage string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		AllowedOrigin:        getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),
		CanvasWidth:          getEnvInt("CANVAS_WIDTH", 400),
		CanvasHeight:         getEnvInt("CANVAS_HEIGHT", 250),
		ShapeCount:           getEnvInt("SHAPE_COUNT", 10),
		MinShapeSize:         getEnvInt("MIN_SHAPE_SIZE", 30),
		MaxShapeSize:         getEnvInt("MAX_SHAPE_SIZE", 50),
		ShapeMargin:          getEnvInt("SHAPE_MARGIN", 4),
		MaxPlacementAttempts: getEnvInt("MAX_PLACEMENT_ATTEMPTS", 300),
		MaxLayoutRetries:     getEnvInt("MAX_LAYOUT_RETRIES", 3),
		ScaleFactor:          getEnvInt("SCALE_FACTOR", 3),
		NoiseLines:           getEnvInt("NOISE_LINES", 0),
		PointNoiseDensity:    getEnvFloat("POINT_NOISE_DENSITY", 0),
		ChallengeTTLSeconds:  getEnvInt("CHALLENGE_TTL_SECONDS", 300),
		StoreBackend:         getEnv("STORE_BACKEND", StoreMemory),
		SQLitePath:           getEnv("SQLITE_PATH", "challenges.db"),
		AWSRegion:            getEnv("AWS_REGION", "ap-northeast-1"),
		S3Bucket:             getEnv("S3_BUCKET", ""),
		CloudfrontDomain:     getEnv("CLOUDFRONT_DOMAIN", ""),
		DefaultLanguage:      getEnv("DEFAULT_LANGUAGE", "en"),
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	// Validate port is a number
	if _, err := strconv.Atoi(c.Port); err != nil {
		return errors.New("invalid port: must be a number")
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return errors.New("invalid canvas size: must be positive")
	}
	if c.ShapeCount <= 0 {
		return errors.New("invalid shape count: must be positive")
	}
	if c.MinShapeSize <= 0 || c.MaxShapeSize < c.MinShapeSize {
		return errors.New("invalid shape size bounds")
	}
	if c.ShapeMargin < 0 {
		return errors.New("invalid shape margin: must not be negative")
	}
	if c.ScaleFactor < 1 {
		return errors.New("invalid scale factor: must be at least 1")
	}
	if c.ChallengeTTLSeconds <= 0 {
		return errors.New("invalid challenge TTL: must be positive")
	}
	if c.StoreBackend != StoreMemory && c.StoreBackend != StoreSQLite {
		return fmt.Errorf("invalid store backend %q: must be %q or %q",
			c.StoreBackend, StoreMemory, StoreSQLite)
	}
	if c.StoreBackend == StoreSQLite && c.SQLitePath == "" {
		return errors.New("sqlite store requires SQLITE_PATH")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default value.
// Unparseable values fall back to the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvFloat returns a float environment variable or a default value.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
