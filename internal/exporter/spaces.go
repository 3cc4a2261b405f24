package exporter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"docsense/internal/config"
	"docsense/internal/logging"
	"docsense/pkg/models"
)

var (
	ErrStorageConfig = errors.New("storage_configuration")
	ErrUpload        = errors.New("upload_failed")
)

// Uploader stores a generated artifact and returns its public URL
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// SpacesClient uploads artifacts to DigitalOcean Spaces through the S3 API
type SpacesClient struct {
	client     *s3.S3
	bucketName string
	bucketURL  string
	cdnURL     string
	logger     logging.Logger
}

// Configured reports whether cfg carries enough to build a client
func Configured(cfg *config.Config) bool {
	s := cfg.Storage
	return s.AccessKeyID != "" && s.AccessKeySecret != "" && s.BucketName != ""
}

// NewSpacesClient builds a client from the storage block. Endpoint defaults
// to the regional Spaces host; set it for other S3-compatible stores.
func NewSpacesClient(cfg *config.Config, logger logging.Logger) (*SpacesClient, error) {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	st := cfg.Storage
	if !Configured(cfg) {
		return nil, fmt.Errorf("%w: bucket name and credentials are required", ErrStorageConfig)
	}

	endpoint := st.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.digitaloceanspaces.com", st.Region)
	}

	sess, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials(st.AccessKeyID, st.AccessKeySecret, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(st.Region),
		S3ForcePathStyle: aws.Bool(st.PathStyle),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageConfig, err)
	}

	logger.Info("Storage client initialized", map[string]interface{}{
		"bucket_name": st.BucketName,
		"region":      st.Region,
		"endpoint":    endpoint,
	})

	return &SpacesClient{
		client:     s3.New(sess),
		bucketName: st.BucketName,
		bucketURL:  st.BucketURL,
		cdnURL:     st.CDNEndpoint,
		logger:     logger,
	}, nil
}

// Upload puts data under key with public-read access
func (sc *SpacesClient) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := sc.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(sc.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		sc.logger.Error("Failed to upload object", map[string]interface{}{
			"object_key": key,
			"error":      err.Error(),
		})
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	url := sc.PublicURL(key)
	sc.logger.Info("export.upload.ok", map[string]interface{}{
		"object_key": key,
		"size_bytes": len(data),
		"url":        url,
	})
	return url, nil
}

// PublicURL prefers the CDN, then the bucket URL, then the virtual-hosted
// Spaces address
func (sc *SpacesClient) PublicURL(key string) string {
	if sc.cdnURL != "" {
		return strings.TrimRight(sc.cdnURL, "/") + "/" + key
	}
	if sc.bucketURL != "" {
		base := strings.TrimRight(sc.bucketURL, "/")
		if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
			base = "https://" + base
		}
		return base + "/" + key
	}
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", sc.bucketName, aws.StringValue(sc.client.Config.Region), key)
}

// CheckHealth heads the bucket
func (sc *SpacesClient) CheckHealth(ctx context.Context) error {
	_, err := sc.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{Bucket: aws.String(sc.bucketName)})
	return err
}

// ReportKey names an archived report: reports/<type>/<utc stamp>-<id>.xlsx
func ReportKey(docType models.DocumentType, at time.Time) string {
	return fmt.Sprintf("reports/%s/%s-%s.xlsx", docType, at.UTC().Format("20060102-150405"), uuid.NewString()[:8])
}
