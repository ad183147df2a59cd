package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/otel"
	"hotelbook/shared/constant"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObject = "object"
	otelAttrBucket = "bucket"
	otelAttrSize   = "size"
)

// S3 stores hotel images in an S3 compatible bucket. An empty bucketName means the configured one.
type S3 interface {
	UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (url string, err error)
	DeleteFile(ctx context.Context, bucketName, directory, objectName string) error
	GetObjectNameFromURL(bucketName, url string) (objectName string)
}

type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type storage struct {
	client       objectAPI
	bucketName   string
	publicDomain string
	apiEndpoint  string
	otel         otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) S3 {
	settings := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(settings.AccessKeyID, settings.SecretAccessKey, "")),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load object storage configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(settings.APIEndpoint)
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return newStorage(client, cfg, otl)
}

func newStorage(client objectAPI, cfg *config.Config, otl otel.Otel) *storage {
	return &storage{
		client:       client,
		bucketName:   cfg.External.S3.BucketName,
		publicDomain: strings.TrimSuffix(cfg.External.S3.PublicDomain, "/"),
		apiEndpoint:  strings.TrimSuffix(cfg.External.S3.APIEndpoint, "/"),
		otel:         otl,
	}
}

func (st *storage) bucket(name string) string {
	if name == constant.Empty {
		return st.bucketName
	}

	return name
}

func (st *storage) UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (url string, err error) {
	ctx, scope := st.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFileBytes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucket := st.bucket(bucketName)
	key := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrObject: key,
		otelAttrBucket: bucket,
		otelAttrSize:   len(fileData),
	})

	_, err = st.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileData),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileData))),
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return st.publicDomain + "/" + key, nil
}

func (st *storage) DeleteFile(ctx context.Context, bucketName, directory, objectName string) (err error) {
	ctx, scope := st.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucket := st.bucket(bucketName)
	key := path.Join(directory, objectName)

	scope.SetAttributes(map[string]any{
		otelAttrObject: key,
		otelAttrBucket: bucket,
	})

	if _, err = st.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)}); err != nil {
		log.Error().Err(err).Str(otelAttrObject, key).Msg("failed to delete object")

		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

// GetObjectNameFromURL maps a public or path-style API url back to its object key. Urls of any
// other host yield an empty name.
func (st *storage) GetObjectNameFromURL(bucketName, url string) (objectName string) {
	prefixes := []string{}

	if st.publicDomain != constant.Empty {
		prefixes = append(prefixes, st.publicDomain+"/")
	}

	if st.apiEndpoint != constant.Empty {
		prefixes = append(prefixes, st.apiEndpoint+"/"+st.bucket(bucketName)+"/")
	}

	for _, prefix := range prefixes {
		if name, ok := strings.CutPrefix(url, prefix); ok {
			return name
		}
	}

	return constant.Empty
}
