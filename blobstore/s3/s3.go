package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/apcluster/blobstore"
)

// Store implements blobstore.Store for S3.
type Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// NewStore creates an S3 blob store. prefix is prepended to all names
// (e.g. "datasets/").
func NewStore(client *s3.Client, bucket, prefix string) *Store {
	return &Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   prefix,
	}
}

// NewDefaultStore creates a store using the default AWS configuration chain
// (environment, shared config, instance role).
func NewDefaultStore(ctx context.Context, bucket, prefix string) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewStore(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open implements blobstore.Store.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%w: %s", blobstore.ErrNotFound, name)
		}

		return nil, err
	}

	return out.Body, nil
}

// Put implements blobstore.Store. Large blobs are uploaded in parts.
func (s *Store) Put(ctx context.Context, name string, r io.Reader) error {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   r,
	})

	return err
}

// Delete implements blobstore.Store.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})

	return err
}

// List implements blobstore.Store.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	full := s.key(prefix)

	var names []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(full),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			names = append(names, s.trim(aws.ToString(obj.Key)))
		}
	}

	sort.Strings(names)

	return names, nil
}

func (s *Store) trim(key string) string {
	if s.prefix == "" {
		return key
	}

	return strings.TrimPrefix(strings.TrimPrefix(key, s.prefix), "/")
}
