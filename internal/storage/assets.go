// Package storage resolves and ingests task media through an S3-compatible
// object store. Retrieval hands out short-lived presigned URLs; a missing
// asset is an expected state and surfaces as an empty URL, never an error.
package storage

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/pygus/pygus-backend/internal/config"
)

// Storage prefixes for each asset kind. Keys under these prefixes are always
// derived from normalized names, both at upload and at lookup time.
const (
	ImagePrefix         = "tasks_images"
	WordAudioPrefix     = "tasks_complete_audios"
	SyllableAudioPrefix = "tasks_audios"
)

// Presigned URLs stay valid for 15 minutes.
const urlTTL = 15 * time.Minute

// objectAPI is the slice of the S3 client used by the store. Tests provide a
// stub; production uses *s3.Client.
type objectAPI interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// presignAPI is the slice of the S3 presign client used by the store.
type presignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// AssetStore locates and uploads task media in a single bucket.
type AssetStore struct {
	bucket  string
	client  objectAPI
	presign presignAPI
}

// New builds an AssetStore from static credentials and a custom endpoint so
// it works against both AWS and MinIO-style deployments.
func New(ctx context.Context, cfg config.Config) (*AssetStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, "",
		)))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})
	return &AssetStore{
		bucket:  cfg.S3Bucket,
		client:  client,
		presign: s3.NewPresignClient(client),
	}, nil
}

// ResolveURL checks whether prefix/filename exists and, if so, returns a
// presigned GET URL valid for 15 minutes. An absent object returns "".
// Transport or auth errors are logged and also return "", so callers must
// treat an empty URL as ambiguous between "not recorded" and "lookup failed".
func (s *AssetStore) ResolveURL(ctx context.Context, prefix, filename string) string {
	key := prefix + "/" + filename
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		var notFound *types.NotFound
		if !errors.As(err, &notFound) {
			log.Printf("asset store: head %s failed: %v", key, err)
		}
		return ""
	}
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(urlTTL))
	if err != nil {
		log.Printf("asset store: presign %s failed: %v", key, err)
		return ""
	}
	return req.URL
}

// Upload stores an object at prefix/filename, replacing any previous version.
func (s *AssetStore) Upload(ctx context.Context, prefix, filename string, body io.Reader, contentType string) error {
	key := prefix + "/" + filename
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	return err
}
