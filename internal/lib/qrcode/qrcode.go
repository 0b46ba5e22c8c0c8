// Package qrcode renders the QR codes printed on memorial plaques.
//
// A QR code encodes the canonical profile URL of a memorial. Renders are
// deterministic for a given (content, size, recovery level), so they are
// cached: in Redis when the deployment has one, otherwise in process.
package qrcode

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/memorialize/memorial-backend/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	goqrcode "github.com/skip2/go-qrcode"
)

// DataURLPrefix starts every embeddable PNG payload produced by DataURL.
const DataURLPrefix = "data:image/png;base64,"

// ContentType of the images produced by PNG.
const ContentType = "image/png"

// Cache stores rendered PNGs by key. Implementations must be safe for
// concurrent use; a miss or backend failure is reported as ok == false.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, png []byte)
}

// Generator renders QR codes.
type Generator struct {
	size   int
	level  goqrcode.RecoveryLevel
	cache  Cache
	logger *zerolog.Logger
}

// NewGenerator builds a Generator from config. cache may be nil.
func NewGenerator(cfg *config.QRCodeConfig, cache Cache, logger *zerolog.Logger) *Generator {
	return &Generator{
		size:   cfg.Size,
		level:  recoveryLevel(cfg.RecoveryLevel),
		cache:  cache,
		logger: logger,
	}
}

func recoveryLevel(level string) goqrcode.RecoveryLevel {
	switch level {
	case "low":
		return goqrcode.Low
	case "high":
		return goqrcode.High
	case "highest":
		return goqrcode.Highest
	default:
		return goqrcode.Medium
	}
}

// PNG renders content as a PNG image.
func (g *Generator) PNG(ctx context.Context, content string) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qrcode content must not be empty")
	}

	key := g.cacheKey(content)

	if g.cache != nil {
		if png, ok := g.cache.Get(ctx, key); ok {
			g.logger.Debug().Str("key", key).Msg("qrcode cache hit")
			return png, nil
		}
	}

	png, err := goqrcode.Encode(content, g.level, g.size)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode qrcode for %q", content)
	}

	if g.cache != nil {
		g.cache.Set(ctx, key, png)
	}

	return png, nil
}

// DataURL renders content and returns it as a data:image/png;base64 URL
// that can be embedded directly in an <img> tag.
func (g *Generator) DataURL(ctx context.Context, content string) (string, error) {
	png, err := g.PNG(ctx, content)
	if err != nil {
		return "", err
	}
	return DataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// cacheKey identifies one render: the content plus the settings that
// change the output bytes.
func (g *Generator) cacheKey(content string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%d:%s", g.size, g.level, content)))
	return "qrcode:" + hex.EncodeToString(sum[:])
}

// ProfileURL is the canonical address a memorial's QR code points at:
// "{origin}/memorial/{id}". A trailing slash on origin is ignored.
func ProfileURL(origin string, id int64) string {
	return strings.TrimRight(origin, "/") + "/memorial/" + strconv.FormatInt(id, 10)
}
