package attachment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockS3 struct {
	mock.Mock
}

func (m *MockS3) Upload(ctx context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manager.UploadOutput), args.Error(1)
}

func (m *MockS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func (m *MockS3) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*v4.PresignedHTTPRequest), args.Error(1)
}

func newMockedS3(m *MockS3) *S3 {
	return &S3{
		bucket:     "nodex",
		presignTTL: time.Minute,
		uploader:   m,
		deleter:    m,
		presigner:  m,
		log:        slog.Default(),
		now:        time.Now,
	}
}

func TestS3_Store(t *testing.T) {
	m := new(MockS3)
	s := newMockedS3(m)

	m.On("Upload", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "nodex" &&
			strings.HasPrefix(*in.Key, "serviceuploads/") &&
			strings.HasSuffix(*in.Key, "-logo.png") &&
			in.ContentType != nil && *in.ContentType == "image/png"
	})).Return(&manager.UploadOutput{}, nil)

	key, err := s.Store(context.Background(), "serviceuploads", "logo.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "serviceuploads/"))
	m.AssertExpectations(t)
}

func TestS3_Store_Error(t *testing.T) {
	m := new(MockS3)
	s := newMockedS3(m)
	m.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("network down"))

	_, err := s.Store(context.Background(), "uploads", "x.png", strings.NewReader("x"))
	assert.ErrorContains(t, err, "network down")
}

func TestS3_Remove(t *testing.T) {
	m := new(MockS3)
	s := newMockedS3(m)
	m.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return *in.Key == "uploads/1-abc-x.png"
	})).Return(&s3.DeleteObjectOutput{}, nil)

	require.NoError(t, s.Remove(context.Background(), "uploads/1-abc-x.png"))
	assert.ErrorIs(t, s.Remove(context.Background(), "../x"), ErrInvalidPath)
	m.AssertNumberOfCalls(t, "DeleteObject", 1)
}

func TestS3_Handler_Redirect(t *testing.T) {
	m := new(MockS3)
	s := newMockedS3(m)
	m.On("PresignGetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return *in.Key == "uploads/1-abc-x.png"
	})).Return(&v4.PresignedHTTPRequest{URL: "https://s3.example.com/nodex/uploads/1-abc-x.png?sig=1"}, nil)

	rec := httptest.NewRecorder()
	s.Handler("uploads").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/1-abc-x.png", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "https://s3.example.com/nodex/uploads/1-abc-x.png?sig=1", rec.Header().Get("Location"))
}

func TestS3_Handler_PresignsOffline(t *testing.T) {
	s, err := NewS3(context.Background(), S3Options{
		Bucket:       "nodex",
		Region:       "us-east-1",
		Endpoint:     "http://localhost:9000",
		AccessKey:    "AKIDEXAMPLE",
		SecretKey:    "secret",
		UsePathStyle: true,
		PresignTTL:   time.Minute,
	}, slog.Default())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Handler("contactuploads").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/1-abc-map.png", nil))

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	location := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "http://localhost:9000/nodex/contactuploads/1-abc-map.png?"), location)
	assert.Contains(t, location, "X-Amz-Signature=")
	assert.Contains(t, location, "X-Amz-Expires=60")
}

func TestNewS3_RequiresBucket(t *testing.T) {
	_, err := NewS3(context.Background(), S3Options{}, slog.Default())
	assert.Error(t, err)
}
