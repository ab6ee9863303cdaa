package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const cloudinaryRaw = "raw"

type cloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
	client *http.Client
}

// NewCloudinaryStorage stores objects as raw Cloudinary assets under folder.
func NewCloudinaryStorage(cloudinaryURL, folder string) (ObjectStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	// Ensure HTTPS URLs by default.
	cld.Config.URL.Secure = true

	return &cloudinaryStorage{cld: cld, folder: folder, client: http.DefaultClient}, nil
}

func (s *cloudinaryStorage) publicID(key string) string {
	if s.folder == "" {
		return key
	}
	return s.folder + "/" + key
}

func (s *cloudinaryStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	params := uploader.UploadParams{
		PublicID:     s.publicID(key),
		ResourceType: cloudinaryRaw,
		Overwrite:    api.Bool(false),
	}

	resp, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return fmt.Errorf("failed to upload object to cloudinary: %w", err)
	}
	if resp.PublicID == "" {
		return fmt.Errorf("cloudinary upload returned no public id")
	}
	return nil
}

func (s *cloudinaryStorage) Delete(ctx context.Context, key string) error {
	params := uploader.DestroyParams{
		PublicID:     s.publicID(key),
		ResourceType: cloudinaryRaw,
		Invalidate:   api.Bool(true),
	}

	resp, err := s.cld.Upload.Destroy(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to delete object from cloudinary: %w", err)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}
	return nil
}

func (s *cloudinaryStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	asset, err := s.cld.File(s.publicID(key))
	if err != nil {
		return nil, fmt.Errorf("failed to build cloudinary asset: %w", err)
	}
	assetURL, err := asset.String()
	if err != nil {
		return nil, fmt.Errorf("failed to build cloudinary url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch object from cloudinary: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrObjectNotFound
	case resp.StatusCode >= http.StatusBadRequest:
		resp.Body.Close()
		return nil, fmt.Errorf("cloudinary returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
