// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/remoteestate/backend/internal/config"
)

// Uploaded objects are served through long-lived presigned GET URLs rather
// than public ACLs.
const presignedURLTTL = 365 * 24 * time.Hour

type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

type UploadOptions struct {
	Bucket       string
	MaxSize      int64 // in bytes
	AllowedTypes []string
}

func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &StorageService{config: config}, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

// ImageUploadOptions covers property photos.
func (s *StorageService) ImageUploadOptions() UploadOptions {
	return UploadOptions{
		Bucket:       s.config.AWS.ImageBucket,
		MaxSize:      10 * 1024 * 1024, // 10MB
		AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
	}
}

// DocumentUploadOptions covers ownership documents and contract drafts.
func (s *StorageService) DocumentUploadOptions() UploadOptions {
	return UploadOptions{
		Bucket:       s.config.AWS.DocumentBucket,
		MaxSize:      25 * 1024 * 1024, // 25MB
		AllowedTypes: []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png"},
	}
}

// UploadFile validates the file against the options and stores it under a
// key prefixed by the uploader's user id, so account deletion can sweep all
// of a user's objects by prefix.
func (s *StorageService) UploadFile(file multipart.File, header *multipart.FileHeader, userID string, options UploadOptions) (*UploadResult, error) {
	// Validate file size
	if options.MaxSize > 0 && header.Size > options.MaxSize {
		return nil, fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", header.Size, options.MaxSize)
	}

	// Validate file type
	if len(options.AllowedTypes) > 0 {
		fileExt := strings.ToLower(filepath.Ext(header.Filename))
		allowed := false
		for _, allowedType := range options.AllowedTypes {
			if fileExt == allowedType {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, fmt.Errorf("file type %s is not allowed", fileExt)
		}
	}

	key := s.generateFileKey(header.Filename, userID)

	// Read file content
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if s.s3Client != nil {
		return s.uploadToS3(fileBytes, options.Bucket, key, contentType)
	}

	return s.uploadToLocal(fileBytes, key, contentType)
}

func (s *StorageService) uploadToS3(fileBytes []byte, bucket, key, contentType string) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	}

	if _, err := s.s3Client.PutObject(params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	url, err := s.presignedGetURL(bucket, key)
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		URL:      url,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	// Local development stand-in: no bytes are persisted, callers just get a
	// URL shape they can render.
	url := fmt.Sprintf("http://localhost:%s/uploads/%s", s.config.Server.Port, key)

	return &UploadResult{
		URL:      url,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) presignedGetURL(bucket, key string) (string, error) {
	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(presignedURLTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url, nil
}

// DeleteUserFiles removes every object under the user's prefix in both
// buckets. Used on account deletion; failures are logged by the caller.
func (s *StorageService) DeleteUserFiles(userID string) error {
	if s.s3Client == nil {
		logrus.WithField("user_id", userID).Debug("No S3 client configured, skipping file cleanup")
		return nil
	}

	for _, bucket := range []string{s.config.AWS.ImageBucket, s.config.AWS.DocumentBucket} {
		if err := s.deletePrefix(bucket, userID+"/"); err != nil {
			return err
		}
	}

	return nil
}

func (s *StorageService) deletePrefix(bucket, prefix string) error {
	listInput := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}

	for {
		out, err := s.s3Client.ListObjectsV2(listInput)
		if err != nil {
			return fmt.Errorf("failed to list objects in %s: %w", bucket, err)
		}

		if len(out.Contents) == 0 {
			return nil
		}

		objects := make([]*s3.ObjectIdentifier, 0, len(out.Contents))
		for _, obj := range out.Contents {
			objects = append(objects, &s3.ObjectIdentifier{Key: obj.Key})
		}

		_, err = s.s3Client.DeleteObjects(&s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &s3.Delete{Objects: objects},
		})
		if err != nil {
			return fmt.Errorf("failed to delete objects in %s: %w", bucket, err)
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			return nil
		}
		listInput.ContinuationToken = out.NextContinuationToken
	}
}

func (s *StorageService) generateFileKey(originalName, userID string) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)

	// Keep the original name readable but make the key unique
	base = strings.ReplaceAll(base, " ", "_")
	timestamp := time.Now().UnixMilli()

	return fmt.Sprintf("%s/%d_%s%s", userID, timestamp, base, ext)
}
