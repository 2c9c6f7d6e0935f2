package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// S3Uploader stores user uploads and hands back a publicly resolvable URL.
// The client is injected so tests and multi-tenant setups can swap it.
type S3Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string // CDN or bucket website base, no trailing slash
}

func NewS3Uploader(client *s3.Client, bucket, baseURL string) *S3Uploader {
	return &S3Uploader{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// UploadBase64Image accepts a "data:<mime>;base64,<data>" URI, stores it
// under uploads/<uuid><ext> and returns the public URL.
func (u *S3Uploader) UploadBase64Image(ctx context.Context, dataURI string) (string, error) {
	parts := strings.SplitN(dataURI, ",", 2)
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "data:") {
		return "", fmt.Errorf("invalid base64 image")
	}

	mediaType := strings.TrimPrefix(parts[0], "data:") // "image/jpeg;base64"
	contentType := strings.SplitN(mediaType, ";", 2)[0]

	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	key := fmt.Sprintf("uploads/%s%s", uuid.NewString(), extensionFor(contentType))
	return u.put(ctx, key, contentType, bytes.NewReader(data))
}

// Upload stores an arbitrary file body under uploads/<uuid>.<ext>, taking
// the extension from the original filename.
func (u *S3Uploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = filename[i:]
	}
	key := fmt.Sprintf("uploads/%s%s", uuid.NewString(), ext)
	return u.put(ctx, key, contentType, body)
}

func (u *S3Uploader) put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("%s/%s", u.baseURL, key), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 {
		return "." + parts[1]
	}
	return ""
}
