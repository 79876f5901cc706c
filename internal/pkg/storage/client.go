package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// thumbnail edge length for gallery listings
const thumbnailSize = 480

// Client wraps the S3 client for festival media uploads
type Client struct {
	s3Client *s3.Client
	config   *Config
}

// NewClient creates a new media storage client
func NewClient(cfg *Config) (*Client, error) {
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("media storage is disabled")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	client := &Client{
		s3Client: s3Client,
		config:   cfg,
	}

	if err := client.testConnection(); err != nil {
		return nil, fmt.Errorf("failed to connect to S3: %w", err)
	}

	log.Infof("[Storage] Media storage ready, bucket: %s", cfg.Bucket)
	return client, nil
}

// testConnection checks that the configured bucket is reachable
func (c *Client) testConnection() error {
	ctx := context.Background()

	_, err := c.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.config.Bucket),
	})

	if err != nil {
		// If bucket doesn't exist, try to create it (for development)
		if GetAppEnv() != "prod" {
			log.Warnf("[Storage] Bucket %s not found, attempting to create it", c.config.Bucket)
			return c.createBucket(c.config.Bucket)
		}
		return fmt.Errorf("bucket %s not accessible: %w", c.config.Bucket, err)
	}

	return nil
}

// createBucket creates a new S3 bucket (dev/staging only)
func (c *Client) createBucket(bucketName string) error {
	ctx := context.Background()

	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucketName),
	}

	if c.config.EndpointURL == "" && c.config.Region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(c.config.Region),
		}
	}

	_, err := c.s3Client.CreateBucket(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
	}

	log.Infof("[Storage] Successfully created bucket: %s", bucketName)
	return nil
}

// UploadResult describes a stored media object
type UploadResult struct {
	ObjectKey    string
	ThumbnailKey string
	Size         int64
	ContentType  string
	PublicURL    string
	ThumbnailURL string
}

// UploadImage stores an uploaded image under the given folder, generating a
// bounded thumbnail alongside the original. folder is e.g. "contestants" or
// "vendors".
func (c *Client) UploadImage(ctx context.Context, folder, filename string, r io.Reader) (*UploadResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType := contentTypeFor(ext)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("unsupported media type %s", ext)
	}

	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	_, err = c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		Metadata: map[string]string{
			"original-name": filename,
			"upload-source": "festhive-web",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	result := &UploadResult{
		ObjectKey:   key,
		Size:        int64(len(data)),
		ContentType: contentType,
		PublicURL:   c.PublicURL(key),
	}

	// Thumbnail failures are not fatal, the original is already stored
	if thumbKey, terr := c.uploadThumbnail(ctx, key, data); terr != nil {
		log.Warnf("[Storage] Thumbnail for %s failed: %v", key, terr)
	} else {
		result.ThumbnailKey = thumbKey
		result.ThumbnailURL = c.PublicURL(thumbKey)
	}

	log.Infof("[Storage] Uploaded media s3://%s/%s (%d bytes)", c.config.Bucket, key, len(data))
	return result, nil
}

// uploadThumbnail resizes the image to fit the thumbnail bound and stores it
// next to the original as JPEG.
func (c *Client) uploadThumbnail(ctx context.Context, originalKey string, data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(82)); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	ext := filepath.Ext(originalKey)
	thumbKey := strings.TrimSuffix(originalKey, ext) + "_thumb.jpg"

	_, err = c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.config.Bucket),
		Key:           aws.String(thumbKey),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentType:   aws.String("image/jpeg"),
		ContentLength: aws.Int64(int64(buf.Len())),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	return thumbKey, nil
}

// DeleteObject removes a stored media object
func (c *Client) DeleteObject(ctx context.Context, objectKey string) error {
	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.config.Bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from S3: %w", err)
	}

	log.Infof("[Storage] Deleted s3://%s/%s", c.config.Bucket, objectKey)
	return nil
}

// PublicURL builds the browser-facing URL for a stored object
func (c *Client) PublicURL(objectKey string) string {
	if c.config.PublicBaseURL != "" {
		return strings.TrimRight(c.config.PublicBaseURL, "/") + "/" + objectKey
	}
	if c.config.EndpointURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.config.EndpointURL, "/"), c.config.Bucket, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.config.Bucket, c.config.Region, objectKey)
}

// contentTypeFor returns the MIME type based on file extension
func contentTypeFor(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
