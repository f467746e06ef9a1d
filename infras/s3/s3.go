package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"roomboard/config"
	"roomboard/infras/otel"
	"roomboard/shared/constant"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrFileName = "file_name"
	otelAttrBucket   = "bucket"

	defaultRegion = "auto"
)

type S3 interface {
	UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (url string, err error)
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFileBytes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if bucketName == "" {
		bucketName = svc.Config.External.S3.BucketName
	}

	scope.SetAttributes(map[string]any{
		otelAttrFileName: fileName,
		otelAttrBucket:   bucketName,
	})

	objectKey := path.Join(directory, fileName)
	fileReader := bytes.NewReader(fileData)

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(objectKey),
		Body:          fileReader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(fileReader.Size()),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return ObjectURL(svc.Config, bucketName, objectKey), nil
}

// ObjectURL is the public URL of key, or a path-style endpoint URL when no public URL is configured.
func ObjectURL(cfg *config.Config, bucketName, key string) string {
	if public := strings.TrimSuffix(cfg.External.S3.PublicURL, "/"); public != "" {
		return fmt.Sprintf("%s/%s", public, key)
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(cfg.External.S3.Endpoint, "/"), bucketName, key)
}

// New returns nil when no bucket is configured.
func New(config *config.Config, otel otel.Otel) S3 {
	s3Cfg := config.External.S3
	if s3Cfg.BucketName == "" {
		log.Warn().Msg("S3 bucket not set, board export is disabled")

		return nil
	}

	opts := []func(*awsConfig.LoadOptions) error{}
	if s3Cfg.AccessKeyID != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s3Cfg.AccessKeyID,
			s3Cfg.SecretAccessKey,
			"",
		)))
	}

	cfg, err := awsConfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	region := s3Cfg.Region
	if region == "" {
		region = defaultRegion
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3Cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3Cfg.Endpoint)
			o.UsePathStyle = true
		}

		o.Region = region
	})

	return &s3Impl{
		Client: s3Client,
		Config: config,
		otel:   otel,
	}
}
