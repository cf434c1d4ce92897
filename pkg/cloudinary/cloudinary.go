// Package cloudinary stores uploaded display assets (posters, promotion
// videos) in Cloudinary and hands back the CDN URL the venue screens load.
package cloudinary

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// Config carries the Cloudinary account credentials plus the folder assets
// are grouped under.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Uploader pushes asset files to Cloudinary.
type Uploader struct {
	client *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
}

// New builds an Uploader from the given credentials.
func New(cfg Config, logger zerolog.Logger) (*Uploader, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Uploader{
		client: client,
		folder: strings.Trim(cfg.Folder, "/"),
		logger: logger.With().Str("component", "cloudinary").Logger(),
	}, nil
}

// Upload streams the file to Cloudinary and returns its secure delivery URL.
// The resource type is auto-detected, so the same path serves poster images
// and promotion videos.
func (u *Uploader) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	result, err := u.client.Upload.Upload(ctx, reader, uploader.UploadParams{
		Folder:       u.folder,
		PublicID:     assetPublicID(name),
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}

	u.logger.Info().Str("public_id", result.PublicID).Msg("asset uploaded to cloudinary")

	return result.SecureURL, nil
}

// assetPublicID derives a collision-resistant public ID from the original
// filename: the extension goes, unsafe runes become dashes, and a timestamp
// suffix keeps re-uploads of the same poster distinct.
func assetPublicID(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, base)

	base = strings.Trim(base, "-")
	if base == "" {
		base = "asset"
	}

	return fmt.Sprintf("%s-%d", base, time.Now().Unix())
}
