package main

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cespare/xxhash/v2"
	"github.com/spf13/cobra"

	"github.com/vango-dev/listkit/internal/config"
	"github.com/vango-dev/listkit/internal/sample"
	"github.com/vango-dev/listkit/pkg/differ"
	"github.com/vango-dev/listkit/pkg/host/term"
	"github.com/vango-dev/listkit/pkg/paging"
	"github.com/vango-dev/listkit/pkg/paging/s3source"
)

type s3Options struct {
	bucket   string
	prefix   string
	region   string
	endpoint string
}

func (o *s3Options) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.bucket, "s3-bucket", "", "List objects of this public S3 bucket")
	cmd.Flags().StringVar(&o.prefix, "s3-prefix", "", "Key prefix to list")
	cmd.Flags().StringVar(&o.region, "s3-region", "us-east-1", "Bucket region")
	cmd.Flags().StringVar(&o.endpoint, "s3-endpoint", "", "Custom S3-compatible endpoint")
}

// client creates an anonymous S3 client for public buckets.
func (o *s3Options) client() *s3.Client {
	return s3.New(s3.Options{
		Region:      o.region,
		Credentials: aws.AnonymousCredentials{},
	}, func(opts *s3.Options) {
		if o.endpoint != "" {
			opts.BaseEndpoint = aws.String(o.endpoint)
			opts.UsePathStyle = true
		}
	})
}

// objectItem shows directories as titles and objects as content rows.
func objectItem(obj types.Object) (sample.Item, bool) {
	key := aws.ToString(obj.Key)
	if key == "" {
		return nil, false
	}
	id := int(xxhash.Sum64String(key) >> 33)

	if key[len(key)-1] == '/' {
		return sample.Title{ID: id, Text: key}, true
	}
	return sample.Content{ID: id, Text: fmt.Sprintf("%s (%d B)", path.Base(key), aws.ToInt64(obj.Size))}, true
}

func demoS3(ctx context.Context, loop *differ.Loop, gridCfg term.Config, cfg *config.Config, opts demoOptions) error {
	src := s3source.New(opts.s3.client(), opts.s3.bucket, objectItem, s3source.WithPrefix(opts.s3.prefix))
	pager, err := paging.NewPager[string, sample.Item](src, cfg.PagingConfig())
	if err != nil {
		return err
	}
	info("listing s3://%s/%s", opts.s3.bucket, opts.s3.prefix)
	return scroll(ctx, loop, gridCfg, pager, opts)
}
