package config

import (
	"fmt"
	"time"
)

// QRCodeConfig controls how profile QR codes are rendered and cached.
type QRCodeConfig struct {
	// Size is the PNG width/height in pixels.
	Size int `koanf:"size"`

	// RecoveryLevel is one of low, medium, high, highest.
	RecoveryLevel string `koanf:"recovery_level"`

	// CacheSize bounds the in-process render cache (entries).
	// Ignored when Redis is configured.
	CacheSize int `koanf:"cache_size"`

	// CacheTTL is how long a rendered image stays cached.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// DefaultQRCodeConfig returns the settings used when no qrcode block is configured.
func DefaultQRCodeConfig() *QRCodeConfig {
	return &QRCodeConfig{
		Size:          256,
		RecoveryLevel: "medium",
		CacheSize:     512,
		CacheTTL:      24 * time.Hour,
	}
}

// applyDefaults fills zero values left by a partially configured block.
func (c *QRCodeConfig) applyDefaults() {
	defaults := DefaultQRCodeConfig()
	if c.Size == 0 {
		c.Size = defaults.Size
	}
	if c.RecoveryLevel == "" {
		c.RecoveryLevel = defaults.RecoveryLevel
	}
	if c.CacheSize == 0 {
		c.CacheSize = defaults.CacheSize
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = defaults.CacheTTL
	}
}

// Validate checks value ranges that struct tags cannot express.
func (c *QRCodeConfig) Validate() error {
	if c.Size < 21 || c.Size > 4096 {
		return fmt.Errorf("qrcode size must be between 21 and 4096 pixels, got %d", c.Size)
	}

	switch c.RecoveryLevel {
	case "low", "medium", "high", "highest":
	default:
		return fmt.Errorf("invalid qrcode recovery_level: %s (must be one of: low, medium, high, highest)", c.RecoveryLevel)
	}

	if c.CacheSize < 0 {
		return fmt.Errorf("qrcode cache_size must be non-negative")
	}

	if c.CacheTTL < 0 {
		return fmt.Errorf("qrcode cache_ttl must be non-negative")
	}

	return nil
}
