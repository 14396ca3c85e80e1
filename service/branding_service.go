package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"log"
	"os"
	"sync"
)

// BrandingService provides the shop logo printed on receipts.
// The logo is read from a local file or from Drive, fitted once and kept in memory.
type BrandingService struct {
	driveService DriveServiceInterface
	logoPath     string
	driveFileID  string

	mu     sync.Mutex
	loaded bool
	logo   template.URL
}

// NewBrandingService creates a new BrandingService. driveService may be nil.
func NewBrandingService(driveService DriveServiceInterface, logoPath, driveFileID string) *BrandingService {
	return &BrandingService{
		driveService: driveService,
		logoPath:     logoPath,
		driveFileID:  driveFileID,
	}
}

// LogoDataURI returns the logo as a data URI, or "" when no logo is configured
// or it cannot be loaded. A failed load is not retried.
func (b *BrandingService) LogoDataURI(ctx context.Context) template.URL {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.loaded {
		return b.logo
	}
	b.loaded = true

	data, err := b.loadLogo(ctx)
	if err != nil {
		log.Printf("⚠️  LogoDataURI: %v", err)
		return ""
	}
	if data == nil {
		return ""
	}

	b.logo = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
	return b.logo
}

func (b *BrandingService) loadLogo(ctx context.Context) ([]byte, error) {
	var raw []byte
	var cacheKey string

	switch {
	case b.logoPath != "":
		data, err := os.ReadFile(b.logoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read logo %s: %w", b.logoPath, err)
		}
		raw = data
	case b.driveFileID != "" && b.driveService != nil:
		cacheKey = b.driveFileID
		if cached, err := ReadFromCache(GetCachePath(cacheKey)); err == nil {
			log.Printf("✓ Logo loaded from cache: %s", cacheKey)
			return cached, nil
		}
		data, err := b.driveService.DownloadFile(ctx, b.driveFileID)
		if err != nil {
			return nil, fmt.Errorf("failed to download logo: %w", err)
		}
		raw = data
	default:
		return nil, nil
	}

	optimized, err := OptimizeLogo(raw, maxLogoWidth, maxLogoHeight)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if err := SaveToCache(GetCachePath(cacheKey), optimized); err != nil {
			log.Printf("⚠️  loadLogo: %v", err)
		}
	}
	return optimized, nil
}
