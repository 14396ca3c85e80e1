package service

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const (
	cacheDir = "cache/branding"
	// Receipt header logo bounds, in pixels (80mm roll at ~200 dpi)
	maxLogoWidth  = 480
	maxLogoHeight = 200
)

// GetCachePath returns the cache file path for an optimized logo
func GetCachePath(key string) string {
	return filepath.Join(cacheDir, fmt.Sprintf("logo_%s.png", key))
}

// ReadFromCache reads an image from the cache
func ReadFromCache(cachePath string) ([]byte, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read from cache: %w", err)
	}
	return data, nil
}

// SaveToCache saves an image to the cache
func SaveToCache(cachePath string, imageData []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if err := os.WriteFile(cachePath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Printf("✓ Image cached: %s", cachePath)
	return nil
}

// OptimizeLogo fits a logo inside maxWidth x maxHeight keeping its aspect ratio,
// converts it to grayscale for thermal printing and encodes it as PNG.
// Images already within bounds are not upscaled.
func OptimizeLogo(imageData []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 Logo decoded: bounds=%v", img.Bounds())

	var fitted image.Image = img
	bounds := img.Bounds()
	if bounds.Dx() > maxWidth || bounds.Dy() > maxHeight {
		fitted = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
		log.Printf("🔄 Resizing logo: %dx%d -> %dx%d", bounds.Dx(), bounds.Dy(), fitted.Bounds().Dx(), fitted.Bounds().Dy())
	}
	fitted = imaging.Grayscale(fitted)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode to PNG: %w", err)
	}

	log.Printf("✓ Logo optimized: output_size=%d bytes", buf.Len())
	return buf.Bytes(), nil
}
