package attachment

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/exp/slog"
)

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type deleter interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3 хранит вложения в бакете, ключ объекта совпадает с относительным путем.
// Файлы отдаются редиректом на подписанный URL.
type S3 struct {
	bucket     string
	presignTTL time.Duration
	uploader   uploader
	deleter    deleter
	presigner  presigner
	log        *slog.Logger
	now        func() time.Time
}

func NewS3(ctx context.Context, cfg S3Options, log *slog.Logger) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket must not be empty")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	log.Debug("s3 attachment storage enabled", "bucket", cfg.Bucket, "endpoint", cfg.Endpoint)

	return &S3{
		bucket:     cfg.Bucket,
		presignTTL: ttl,
		uploader:   manager.NewUploader(client),
		deleter:    client,
		presigner:  s3.NewPresignClient(client),
		log:        log.With("component", "attachment_s3"),
		now:        time.Now,
	}, nil
}

func (s *S3) Store(ctx context.Context, dir, originalName string, r io.Reader) (string, error) {
	if err := checkDir(dir); err != nil {
		return "", err
	}

	key := path.Join(dir, NewName(s.now(), originalName))
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	s.log.Debug("attachment uploaded", "key", key)

	return key, nil
}

// Remove удаляет объект. S3 не сообщает об отсутствии ключа, так что повторное удаление безопасно.
func (s *S3) Remove(ctx context.Context, p string) error {
	if err := checkPath(p); err != nil {
		return err
	}

	_, err := s.deleter.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(p),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", p, err)
	}

	return nil
}

func (s *S3) Handler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		if name == "" || checkPath(name) != nil || strings.Contains(name, "/") {
			http.NotFound(w, r)
			return
		}

		req, err := s.presigner.PresignGetObject(r.Context(), &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(path.Join(dir, name)),
		}, s3.WithPresignExpires(s.presignTTL))
		if err != nil {
			s.log.Error("presign failed", "key", path.Join(dir, name), "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, req.URL, http.StatusTemporaryRedirect)
	})
}
