// Package provider talks to the S3-compatible dataset provider. It owns the
// authentication and transfer protocol; callers only see typed errors and
// files appearing on disk.
package provider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "dsfetch/config"
	"dsfetch/internal/models"
	"dsfetch/pkg/utils"
)

const archiveExtension = ".zip"

type Client struct {
	s3Client   *s3.Client
	downloader *manager.Downloader
	config     *appConfig.Config
}

func New(cfg *appConfig.Config) (*Client, error) {
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     cfg.AccessKey,
				SecretAccessKey: cfg.SecretKey,
			},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Client *s3.Client
	if cfg.ApiURL != "" {
		s3Client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.ApiURL)
			o.UsePathStyle = true
		})
	} else {
		s3Client = s3.NewFromConfig(awsConfig)
	}

	// A single part stream keeps the destination file append-only, which the
	// growth monitor depends on.
	downloader := manager.NewDownloader(s3Client, func(d *manager.Downloader) {
		d.Concurrency = 1
	})

	return &Client{
		s3Client:   s3Client,
		downloader: downloader,
		config:     cfg,
	}, nil
}

// ArchiveName returns the artifact name the provider uses for a dataset.
// The orchestrator's expected-path convention must match this exactly.
func ArchiveName(datasetID string) string {
	return datasetID + archiveExtension
}

func (c *Client) Authenticate(ctx context.Context) error {
	if c.config.AccessKey == "" || c.config.SecretKey == "" {
		return &AuthError{Err: errors.New("missing access credentials")}
	}

	_, err := c.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.config.BucketName),
	})
	if err != nil {
		return &AuthError{Err: err}
	}
	return nil
}

// FetchAll downloads the dataset's archive into destDir, blocking until the
// transfer completes or fails. The partial file is left in place on failure;
// cleanup is the caller's decision.
func (c *Client) FetchAll(ctx context.Context, datasetID, destDir string) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return &TransferError{Dataset: datasetID, Err: err}
	}

	destPath := filepath.Join(destDir, ArchiveName(datasetID))
	out, err := os.Create(destPath)
	if err != nil {
		return &TransferError{Dataset: datasetID, Err: err}
	}
	defer out.Close()

	_, err = c.downloader.Download(ctx, out, &s3.GetObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(c.datasetKey(datasetID)),
	})
	if err != nil {
		return &TransferError{Dataset: datasetID, Err: err}
	}

	return nil
}

func (c *Client) ListDatasets(ctx context.Context) (*models.DatasetList, error) {
	bucketName := c.config.BucketName
	prefix := c.normalizedPrefix()

	var datasets []models.DatasetInfo

	paginator := s3.NewListObjectsV2Paginator(c.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucketName),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list datasets: %w", err)
		}

		for _, obj := range page.Contents {
			if obj.Key == nil || !strings.HasSuffix(*obj.Key, archiveExtension) {
				continue
			}

			name := strings.TrimSuffix(strings.TrimPrefix(*obj.Key, prefix), archiveExtension)

			var size int64
			if obj.Size != nil {
				size = *obj.Size
			}

			lastModified := ""
			if obj.LastModified != nil {
				lastModified = utils.FormatTime(*obj.LastModified)
			}

			datasets = append(datasets, models.DatasetInfo{
				Name:         name,
				Key:          *obj.Key,
				SizeBytes:    size,
				SizeHuman:    utils.FormatSize(size),
				LastModified: lastModified,
			})
		}
	}

	return &models.DatasetList{
		BucketName:    bucketName,
		Prefix:        c.config.DatasetPrefix,
		Datasets:      datasets,
		TotalCount:    len(datasets),
		OperationTime: utils.FormatTime(time.Now()),
	}, nil
}

func (c *Client) datasetKey(datasetID string) string {
	return c.normalizedPrefix() + ArchiveName(datasetID)
}

func (c *Client) normalizedPrefix() string {
	prefix := strings.TrimPrefix(c.config.DatasetPrefix, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}
