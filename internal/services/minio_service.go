package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"translation-backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// ArtifactMirror keeps copies of completed export artifacts in object storage.
type ArtifactMirror interface {
	Upload(ctx context.Context, objectKey, filePath, contentType string) error
	PresignedURL(ctx context.Context, objectKey, fileName string) (string, error)
	Remove(ctx context.Context, objectKey string) error
}

type MinIOService struct {
	client *minio.Client
	bucket string
	region string
	expiry time.Duration
	logger *logrus.Logger
}

func NewMinIOService(cfg *config.MinIOConfig, logger *logrus.Logger) (*MinIOService, error) {
	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"bucket":   cfg.BucketName,
		"useSSL":   cfg.UseSSL,
	}).Info("MinIO client initialized successfully")

	service := &MinIOService{
		client: minioClient,
		bucket: cfg.BucketName,
		region: cfg.Region,
		expiry: cfg.PresignExpiry,
		logger: logger,
	}

	if err := service.ensureBucket(context.Background()); err != nil {
		logger.WithError(err).Warn("Failed to configure bucket, but continuing...")
	}

	return service, nil
}

// ensureBucket creates the bucket when missing. Exports are private, access
// goes through presigned URLs only.
func (s *MinIOService) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.WithField("bucket", s.bucket).Info("Bucket created successfully")
	}
	return nil
}

func (s *MinIOService) Upload(ctx context.Context, objectKey, filePath, contentType string) error {
	info, err := s.client.FPutObject(ctx, s.bucket, objectKey, filePath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.WithError(err).WithField("objectKey", objectKey).Error("Failed to upload export artifact")
		return fmt.Errorf("failed to upload artifact: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"objectKey": objectKey,
		"size":      info.Size,
	}).Info("Export artifact mirrored to MinIO")
	return nil
}

// PresignedURL returns a time limited download link that makes browsers save
// the object under fileName.
func (s *MinIOService) PresignedURL(ctx context.Context, objectKey, fileName string) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, s.expiry, params)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate presigned URL")
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"objectKey": objectKey,
		"expiry":    s.expiry,
	}).Info("Generated presigned URL")

	return presignedURL.String(), nil
}

func (s *MinIOService) Remove(ctx context.Context, objectKey string) error {
	objectKey = strings.TrimPrefix(objectKey, s.bucket+"/")

	err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.WithError(err).WithField("objectKey", objectKey).Error("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.WithField("objectKey", objectKey).Info("File deleted successfully from MinIO")
	return nil
}
