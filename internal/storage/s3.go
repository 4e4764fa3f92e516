// Package storage provides S3 storage integration.
package storage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// challengePrefix is the key prefix for uploaded challenge images.
const challengePrefix = "captcha/"

// S3ClientInterface defines the interface for S3 operations.
type S3ClientInterface interface {
	GetObject(key string) ([]byte, error)
	PutObject(key string, data []byte) error
	ListObjects(prefix string) ([]string, error)
}

// S3Client publishes challenge images to S3 and hands out their delivery
// URLs. Challenge images are content the client must fetch anyway, so they
// go through the CDN rather than inline in the API response.
type S3Client struct {
	client        S3ClientInterface
	bucket        string
	cloudfrontURL string
}

// NewS3Client creates a new S3Client.
func NewS3Client(client S3ClientInterface, bucket string, cloudfrontURL string) *S3Client {
	return &S3Client{
		client:        client,
		bucket:        bucket,
		cloudfrontURL: strings.TrimSuffix(cloudfrontURL, "/"),
	}
}

// UploadChallengeImage uploads an encoded PNG under a fresh key and returns
// its CloudFront URL.
func (c *S3Client) UploadChallengeImage(pngData []byte) (string, error) {
	filename := uuid.New().String() + ".png"
	key := challengePrefix + filename

	if err := c.client.PutObject(key, pngData); err != nil {
		return "", fmt.Errorf("failed to upload challenge image: %w", err)
	}

	return fmt.Sprintf("%s/%s", c.cloudfrontURL, key), nil
}

// GetImage fetches a stored image by key.
func (c *S3Client) GetImage(key string) ([]byte, error) {
	data, err := c.client.GetObject(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return data, nil
}

// ListChallengeImages returns the keys of all uploaded challenge images.
func (c *S3Client) ListChallengeImages() ([]string, error) {
	keys, err := c.client.ListObjects(challengePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenge images: %w", err)
	}
	return keys, nil
}
