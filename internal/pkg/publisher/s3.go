// Package publisher uploads generated site bundles to object storage and
// returns the public URL they are served from.
package publisher

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Publisher stores one site bundle under a slug and reports where it lives.
type Publisher interface {
	Publish(ctx context.Context, slug string, files map[string]string) (string, error)
}

// S3Publisher writes bundles to sites/<slug>/ in the configured bucket.
type S3Publisher struct {
	client *s3.Client
	config *Config
}

// NewS3Publisher creates the S3-backed publisher.
func NewS3Publisher(ctx context.Context, cfg *Config) (*S3Publisher, error) {
	awsConfig, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
		}
	})

	return &S3Publisher{client: client, config: cfg}, nil
}

// Publish uploads every file of the bundle and returns the site's public URL.
// Files are uploaded in name order so retries after a partial failure are
// predictable.
func (p *S3Publisher) Publish(ctx context.Context, slug string, files map[string]string) (string, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		key := path.Join("sites", slug, name)
		_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:       aws.String(p.config.BucketName),
			Key:          aws.String(key),
			Body:         strings.NewReader(files[name]),
			ContentType:  aws.String(contentType(name)),
			CacheControl: aws.String("no-cache"),
		})
		if err != nil {
			return "", fmt.Errorf("failed to upload %s: %w", key, err)
		}
	}

	return p.siteURL(slug), nil
}

func (p *S3Publisher) siteURL(slug string) string {
	if p.config.PublicBaseURL != "" {
		return fmt.Sprintf("%s/sites/%s/", p.config.PublicBaseURL, slug)
	}
	if p.config.EndpointURL != "" {
		return fmt.Sprintf("%s/%s/sites/%s/", strings.TrimRight(p.config.EndpointURL, "/"), p.config.BucketName, slug)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/sites/%s/", p.config.BucketName, p.config.Region, slug)
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "text/javascript; charset=utf-8"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
