package filecache_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/statekit/pkg/filecache"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func newS3Storage(t *testing.T, client *MockS3Client) *filecache.S3Storage {
	t.Helper()
	storage, err := filecache.NewS3Storage(context.Background(), filecache.S3Config{
		Bucket: "test-bucket",
		Region: "us-east-1",
		Prefix: "cache",
	}, filecache.WithS3Client(client))
	require.NoError(t, err)
	return storage
}

func keyIs(key string) func(*string) bool {
	return func(k *string) bool { return k != nil && *k == key }
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		storage, err := filecache.NewS3Storage(context.Background(), filecache.S3Config{
			Bucket:      "test-bucket",
			Region:      "us-east-1",
			AccessKeyID: "test-key",
			SecretKey:   "test-secret",
		})
		require.NoError(t, err)
		require.NotNil(t, storage)
	})

	t.Run("with custom endpoint", func(t *testing.T) {
		t.Parallel()
		storage, err := filecache.NewS3Storage(context.Background(), filecache.S3Config{
			Bucket:         "test-bucket",
			Region:         "us-east-1",
			Endpoint:       "http://localhost:9000",
			ForcePathStyle: true,
		})
		require.NoError(t, err)
		require.NotNil(t, storage)
	})

	t.Run("missing bucket", func(t *testing.T) {
		t.Parallel()
		storage, err := filecache.NewS3Storage(context.Background(), filecache.S3Config{Region: "us-east-1"})
		assert.ErrorIs(t, err, filecache.ErrInvalidConfig)
		assert.Nil(t, storage)
	})
}

func TestS3Storage_Read(t *testing.T) {
	t.Parallel()

	t.Run("successful read", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.MatchedBy(func(p *s3.GetObjectInput) bool {
			return keyIs("test-bucket")(p.Bucket) && keyIs("cache/users/1.json")(p.Key)
		}), mock.Anything).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(bytes.NewReader([]byte(`{"id":1}`))),
		}, nil)

		data, err := newS3Storage(t, client).Read(context.Background(), "users/1.json")
		require.NoError(t, err)
		assert.Equal(t, `{"id":1}`, string(data))
		client.AssertExpectations(t)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchKey{})

		_, err := newS3Storage(t, client).Read(context.Background(), "users/1.json")
		assert.ErrorIs(t, err, filecache.ErrNotFound)
	})

	t.Run("access denied", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"})

		_, err := newS3Storage(t, client).Read(context.Background(), "users/1.json")
		assert.ErrorIs(t, err, filecache.ErrAccessDenied)
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		_, err := newS3Storage(t, client).Read(context.Background(), "../secrets")
		assert.ErrorIs(t, err, filecache.ErrInvalidKey)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestS3Storage_Write(t *testing.T) {
	t.Parallel()

	t.Run("successful write", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(p *s3.PutObjectInput) bool {
			return keyIs("cache/a.json")(p.Key) && p.ContentLength != nil && *p.ContentLength == 2
		}), mock.Anything).Return(&s3.PutObjectOutput{}, nil)

		err := newS3Storage(t, client).Write(context.Background(), "a.json", []byte("{}"))
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("service busy", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "SlowDown"})

		err := newS3Storage(t, client).Write(context.Background(), "a.json", []byte("{}"))
		assert.ErrorIs(t, err, filecache.ErrServiceBusy)
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, context.Canceled)

		err := newS3Storage(t, client).Write(context.Background(), "a.json", []byte("{}"))
		assert.ErrorIs(t, err, filecache.ErrOperationCanceled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestS3Storage_Delete(t *testing.T) {
	t.Parallel()

	t.Run("missing object is not an error", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("DeleteObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "NotFound"})

		assert.NoError(t, newS3Storage(t, client).Delete(context.Background(), "a.json"))
	})

	t.Run("unknown failure", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("DeleteObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("boom"))

		err := newS3Storage(t, client).Delete(context.Background(), "a.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "delete operation failed")
	})
}

func TestS3Storage_Exists(t *testing.T) {
	t.Parallel()

	t.Run("object exists", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(&s3.HeadObjectOutput{}, nil)

		ok, err := newS3Storage(t, client).Exists(context.Background(), "a.json")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("object does not exist", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NotFound{})

		ok, err := newS3Storage(t, client).Exists(context.Background(), "a.json")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("bucket missing", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchBucket{})

		_, err := newS3Storage(t, client).Exists(context.Background(), "a.json")
		assert.ErrorIs(t, err, filecache.ErrBucketNotFound)
	})
}
