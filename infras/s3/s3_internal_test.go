package s3

import (
	"context"
	"errors"
	"hotelbook/config"
	otelMocks "hotelbook/infras/otel/mocks"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	put     *s3.PutObjectInput
	body    []byte
	deleted *s3.DeleteObjectInput
	err     error
}

func (f *fakeObjects) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = params
	f.body, _ = io.ReadAll(params.Body)

	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeObjects) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = params

	return &s3.DeleteObjectOutput{}, f.err
}

func newTestStorage(objects *fakeObjects) *storage {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "hotel-images"
	cfg.External.S3.PublicDomain = "https://cdn.hotelbook.test/"

	return newStorage(objects, cfg, otelMocks.NewOtel())
}

func TestUploadFileBytes(t *testing.T) {
	objects := &fakeObjects{}

	url, err := newTestStorage(objects).UploadFileBytes(context.Background(), "", "hotel", "lobby.png", "image/png", []byte("png"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.hotelbook.test/hotel/lobby.png", url)
	assert.Equal(t, "hotel-images", aws.ToString(objects.put.Bucket))
	assert.Equal(t, "hotel/lobby.png", aws.ToString(objects.put.Key))
	assert.Equal(t, "image/png", aws.ToString(objects.put.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(objects.put.ContentLength))
	assert.Equal(t, []byte("png"), objects.body)
}

func TestUploadFileBytesFailure(t *testing.T) {
	objects := &fakeObjects{err: errors.New("access denied")}

	url, err := newTestStorage(objects).UploadFileBytes(context.Background(), "archive", "hotel", "lobby.png", "image/png", []byte("png"))

	require.ErrorContains(t, err, "access denied")
	assert.Empty(t, url)
	assert.Equal(t, "archive", aws.ToString(objects.put.Bucket))
}

func TestDeleteFile(t *testing.T) {
	objects := &fakeObjects{}

	require.NoError(t, newTestStorage(objects).DeleteFile(context.Background(), "", "hotel", "lobby.png"))
	assert.Equal(t, "hotel-images", aws.ToString(objects.deleted.Bucket))
	assert.Equal(t, "hotel/lobby.png", aws.ToString(objects.deleted.Key))

	objects.err = errors.New("no such key")
	assert.ErrorContains(t, newTestStorage(objects).DeleteFile(context.Background(), "", "hotel", "gone.png"), "no such key")
}
