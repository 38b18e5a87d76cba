package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const imageFolder = "property-images"

var (
	cld     *cloudinary.Cloudinary
	cldOnce sync.Once
	cldErr  error
)

func InitCloudinary() error {
	cldOnce.Do(func() {
		cld, cldErr = cloudinary.NewFromParams(
			os.Getenv("CLOUDINARY_CLOUD_NAME"),
			os.Getenv("CLOUDINARY_API_KEY"),
			os.Getenv("CLOUDINARY_API_SECRET"),
		)
	})
	return cldErr
}

// UploadImage pushes one image into the property-images folder and returns
// its delivery URL.
func UploadImage(ctx context.Context, file io.Reader) (string, error) {
	if cld == nil {
		return "", fmt.Errorf("cloudinary not initialized")
	}
	res, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: imageFolder})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}

// DestroyImage removes an uploaded image by its delivery URL. Best-effort:
// failures are logged and never propagated to the caller.
func DestroyImage(ctx context.Context, imageURL string) {
	if cld == nil {
		return
	}
	publicID := PublicIDFromURL(imageURL)
	if publicID == "" {
		return
	}
	_, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		log.Printf("Cloudinary delete failed for %s: %v", publicID, err)
	}
}

// PublicIDFromURL derives the Cloudinary public ID from a delivery URL: the
// last path segment with its extension stripped, under the upload folder.
func PublicIDFromURL(imageURL string) string {
	parts := strings.Split(imageURL, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return ""
	}
	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}
	return imageFolder + "/" + last
}
