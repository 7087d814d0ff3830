package handlers

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

var errUnsupportedImage = fmt.Errorf("unsupported image format")

// saveDishImage decodes an uploaded PNG/JPEG, downscales it to at most
// 800px wide and writes it as JPEG under uploadDir with a unique name.
// It returns the URL path to store on the dish.
func saveDishImage(file multipart.File, header *multipart.FileHeader, uploadDir string) (string, error) {
	var img image.Image
	var err error

	switch filepath.Ext(header.Filename) {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return "", errUnsupportedImage
	}
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	resized := resize.Resize(800, 0, img, resize.Lanczos3)

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := fmt.Sprintf("%s.jpg", uuid.New().String())
	out, err := os.Create(filepath.Join(uploadDir, filename))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	return "/" + filepath.ToSlash(filepath.Join(uploadDir, filename)), nil
}
