package ocr

import (
	"fmt"

	"github.com/disintegration/imaging"
)

// enhanceForOCR rewrites a rasterized page in place with a contrast/sharpen
// pass that improves recognition of faint or skew-printed invoice scans.
func enhanceForOCR(path string) error {
	src, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("open page image: %w", err)
	}

	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 30)
	img = imaging.Sharpen(img, 1.5)

	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save page image: %w", err)
	}
	return nil
}
