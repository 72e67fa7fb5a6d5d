// Package assets uploads base64 images to an S3-compatible bucket.
package assets

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/tazhibayda/inventory-service/internal/apperr"
	"github.com/tazhibayda/inventory-service/internal/domain"
)

const (
	FolderAvatars = "avatars"
	FolderProduct = "product"
)

type Store interface {
	Upload(ctx context.Context, folder, dataURI string) (domain.Asset, error)
	Delete(ctx context.Context, publicID string) error
}

var ErrBadImage = apperr.New(apperr.KindValidation, "Invalid image, expected a base64 data URI")

var extByType = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/jpg":     "jpg",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
	"image/avif":    "avif",
}

type payload struct {
	ContentType string
	Ext         string
	Data        []byte
}

// decodeDataURI accepts data:<mime>;base64,<body>.
func decodeDataURI(s string) (payload, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return payload{}, ErrBadImage
	}
	meta, body, ok := strings.Cut(rest, ",")
	if !ok {
		return payload{}, ErrBadImage
	}
	mimeType, enc, ok := strings.Cut(meta, ";")
	if !ok || enc != "base64" {
		return payload{}, ErrBadImage
	}
	mimeType = strings.ToLower(mimeType)
	ext, ok := extByType[mimeType]
	if !ok {
		return payload{}, ErrBadImage
	}
	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil || len(data) == 0 {
		return payload{}, ErrBadImage
	}
	return payload{ContentType: mimeType, Ext: ext, Data: data}, nil
}

func newKey(folder, ext string) string {
	return strings.Trim(folder, "/") + "/" + strings.ToLower(ulid.Make().String()) + "." + ext
}
