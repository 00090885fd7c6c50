package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/contentadmin/mediastore/pkg/mediastore"
)

// Config options for the S3 store
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)
	StorageRoot     string // Key prefix and URL path segment (default: "media")

	// MinIO/S3-compatible service options
	CreateBucketIfNotExist bool // Create bucket if it doesn't exist
}

// Store is an S3-compatible implementation of the mediastore.AssetStore
// interface. Namespaces map to key prefixes under StorageRoot.
type Store struct {
	client      *s3.Client
	bucket      string
	storageRoot string
	config      Config
}

// New creates a new S3-compatible asset store
func New(config Config) (*Store, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if config.Region == "" {
		config.Region = "us-east-1"
	}
	if config.StorageRoot == "" {
		config.StorageRoot = "media"
	}

	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	store := &Store{
		client:      s3.NewFromConfig(awsCfg, s3Options...),
		bucket:      config.Bucket,
		storageRoot: config.StorageRoot,
		config:      config,
	}

	if config.CreateBucketIfNotExist {
		if err := store.createBucketIfNotExists(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return store, nil
}

// createBucketIfNotExists creates the bucket if it doesn't exist
func (s *Store) createBucketIfNotExists(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	// Handle multiple error shapes for MinIO compatibility
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) &&
		!strings.Contains(err.Error(), "BadRequest") &&
		!strings.Contains(err.Error(), "NoSuchBucket") {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	createInput := &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	}
	if s.config.Region != "us-east-1" {
		createInput.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.config.Region),
		}
	}

	_, err = s.client.CreateBucket(ctx, createInput)
	if err != nil {
		if strings.Contains(err.Error(), "BucketAlreadyExists") ||
			strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

func (s *Store) objectKey(namespace, filename string) string {
	return fmt.Sprintf("%s/%s/%s", s.storageRoot, namespace, filename)
}

// EnsureNamespace is a no-op for object storage: key prefixes exist
// implicitly, so there is no directory to create.
func (s *Store) EnsureNamespace(ctx context.Context, namespace string) error {
	return nil
}

// Save uploads one file's bytes to the bucket.
func (s *Store) Save(ctx context.Context, namespace, filename string, r io.Reader) error {
	uploader := manager.NewUploader(s.client)

	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(namespace, filename)),
		Body:   r,
	})
	if err != nil {
		return &mediastore.StorageError{
			Namespace: namespace,
			Filename:  filename,
			Op:        "save",
			Err:       err,
		}
	}

	return nil
}

// Exists reports whether the object is present in the bucket.
func (s *Store) Exists(ctx context.Context, namespace, filename string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(namespace, filename)),
	})
	if err == nil {
		return true, nil
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	// HeadObject reports missing keys as a bare 404 on some S3-compatible
	// services rather than a typed NotFound.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchKey") {
		return false, nil
	}
	return false, &mediastore.StorageError{
		Namespace: namespace,
		Filename:  filename,
		Op:        "exists",
		Err:       err,
	}
}

// Delete removes one object. S3's DeleteObject succeeds on missing keys, so
// presence is checked first to surface mediastore.ErrFileNotFound.
func (s *Store) Delete(ctx context.Context, namespace, filename string) error {
	exists, err := s.Exists(ctx, namespace, filename)
	if err != nil {
		return err
	}
	if !exists {
		return &mediastore.StorageError{
			Namespace: namespace,
			Filename:  filename,
			Op:        "delete",
			Err:       mediastore.ErrFileNotFound,
		}
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(namespace, filename)),
	})
	if err != nil {
		return &mediastore.StorageError{
			Namespace: namespace,
			Filename:  filename,
			Op:        "delete",
			Err:       err,
		}
	}

	return nil
}

// URLFor composes {baseAddress}/{storageRoot}/{namespace}/{filename}. The
// base address is expected to front the bucket (CDN or static site host).
func (s *Store) URLFor(baseAddress, namespace, filename string) string {
	return fmt.Sprintf("%s/%s",
		strings.TrimSuffix(baseAddress, "/"), s.objectKey(namespace, filename))
}
