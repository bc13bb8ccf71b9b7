package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	appconfig "jewel-studio-api/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignExpiry = 1 * time.Hour

// MediaStorage resolves product media to a stable public URL, either by
// uploading the bytes server-side or by issuing a presigned URL the browser
// can upload to directly.
type MediaStorage interface {
	Upload(ctx context.Context, fileName, contentType string, body io.Reader) (string, error)
	PresignPut(ctx context.Context, fileName string) (uploadURL, blobURL string, err error)
}

// S3MediaStorage implements MediaStorage against any S3-compatible object
// store (AWS S3 or MinIO).
type S3MediaStorage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	baseURL string
}

func NewS3MediaStorage(ctx context.Context, cfg *appconfig.Config) (*S3MediaStorage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Storage.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := strings.TrimRight(cfg.Storage.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("%s/%s", strings.TrimRight(cfg.Storage.Endpoint, "/"), cfg.Storage.Bucket)
	}

	return &S3MediaStorage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Storage.Bucket,
		baseURL: baseURL,
	}, nil
}

// Upload writes the media bytes under fileName and returns the public URL.
func (s *S3MediaStorage) Upload(ctx context.Context, fileName, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fileName),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload media object: %w", err)
	}
	return s.publicURL(fileName), nil
}

// PresignPut returns a presigned PUT URL for a browser-direct upload, plus
// the clean public URL to store once the upload completes.
func (s *S3MediaStorage) PresignPut(ctx context.Context, fileName string) (string, string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileName),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload url: %w", err)
	}
	return req.URL, s.publicURL(fileName), nil
}

func (s *S3MediaStorage) publicURL(fileName string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, fileName)
}

// RandomFileName builds a random object key, keeping the extension of the
// original upload so content type stays inferable from the URL.
func RandomFileName(original string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(original), "."))
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%s.%s", strings.ReplaceAll(uuid.New().String(), "-", ""), ext)
}
