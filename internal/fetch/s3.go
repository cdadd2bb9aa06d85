package fetch

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

type S3Config struct {
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

// S3 reads s3://bucket/key links. Static credentials are used when set,
// otherwise the default AWS credential chain applies.
type S3 struct {
	cfg S3Config
}

func NewS3(cfg S3Config) *S3 {
	return &S3{cfg: cfg}
}

func (s *S3) client(ctx context.Context) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if s.cfg.Region != "" {
		opts = append(opts, config.WithRegion(s.cfg.Region))
	}
	if s.cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.cfg.AccessKey, s.cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (s *S3) Fetch(ctx context.Context, link string) (io.ReadCloser, error) {
	bucket, key, err := bucketAddr(link, "s3")
	if err != nil {
		return nil, err
	}

	client, err := s.client(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure s3 client")
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not read s3://%s/%s", bucket, key)
	}

	return out.Body, nil
}
