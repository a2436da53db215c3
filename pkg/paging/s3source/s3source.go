// Package s3source pages over the objects of an S3 bucket.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	src := s3source.New(s3.NewFromConfig(cfg), "my-bucket", s3source.Keys,
//		s3source.WithPrefix("exports/"))
//	pager, _ := paging.NewPager(src, paging.Config{PageSize: 100})
package s3source

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vango-dev/listkit/pkg/paging"
)

// maxKeys is the largest page S3 returns from ListObjectsV2.
const maxKeys = 1000

// Decoder maps a listed object to a list item.
// Returning false skips the object.
type Decoder[T any] func(obj types.Object) (T, bool)

// Keys decodes every object to its key.
func Keys(obj types.Object) (string, bool) {
	return aws.ToString(obj.Key), true
}

// Option configures a Source.
type Option func(*options)

type options struct {
	prefix    string
	delimiter string
}

// WithPrefix limits the listing to keys under prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithDelimiter groups keys by delimiter. Grouped prefixes are not listed.
func WithDelimiter(delimiter string) Option {
	return func(o *options) { o.delimiter = delimiter }
}

// Source is a paging.Source keyed by S3 continuation tokens.
type Source[T any] struct {
	client ListObjectsV2APIClient
	bucket string
	decode Decoder[T]
	opts   options
}

// ListObjectsV2APIClient is the subset of *s3.Client the source needs.
type ListObjectsV2APIClient = s3.ListObjectsV2APIClient

// New creates a source listing bucket through client.
func New[T any](client ListObjectsV2APIClient, bucket string, decode Decoder[T], opts ...Option) *Source[T] {
	s := &Source[T]{client: client, bucket: bucket, decode: decode}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

// Load lists one page. LoadSize is capped at the S3 maximum of 1000 keys,
// so a page may hold fewer items than requested even when more remain.
func (s *Source[T]) Load(ctx context.Context, params paging.LoadParams[string]) (paging.LoadResult[string, T], error) {
	size := min(max(params.LoadSize, 1), maxKeys)
	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		MaxKeys: aws.Int32(int32(size)),
	}
	if s.opts.prefix != "" {
		input.Prefix = aws.String(s.opts.prefix)
	}
	if s.opts.delimiter != "" {
		input.Delimiter = aws.String(s.opts.delimiter)
	}
	if params.Key != nil {
		input.ContinuationToken = aws.String(*params.Key)
	}

	out, err := s.client.ListObjectsV2(ctx, input)
	if err != nil {
		return paging.LoadResult[string, T]{}, fmt.Errorf("list s3://%s/%s: %w", s.bucket, s.opts.prefix, err)
	}

	res := paging.LoadResult[string, T]{Items: make([]T, 0, len(out.Contents))}
	for _, obj := range out.Contents {
		if item, ok := s.decode(obj); ok {
			res.Items = append(res.Items, item)
		}
	}
	if aws.ToBool(out.IsTruncated) && out.NextContinuationToken != nil {
		next := *out.NextContinuationToken
		res.NextKey = &next
	}
	return res, nil
}
