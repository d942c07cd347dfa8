package export

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/userdesk/internal/netx"
)

var loadDefaultAWSConfig = config.LoadDefaultConfig

// S3Config addresses an S3-compatible bucket such as MinIO.
type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// S3Exporter uploads reports through a presigned PUT URL.
type S3Exporter struct {
	cfg S3Config
	now func() time.Time
}

func NewS3Exporter(cfg S3Config) *S3Exporter {
	return &S3Exporter{cfg: cfg, now: time.Now}
}

// ObjectKey returns a unique key partitioned by date.
func (e *S3Exporter) ObjectKey() string {
	d := e.now().UTC()
	return fmt.Sprintf("reports/%d/%02d/%02d/%v.json", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (e *S3Exporter) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(e.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			e.cfg.AccessKey,
			e.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if e.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(e.cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return s3.NewPresignClient(client), nil
}

// PresignPut returns a short-lived URL for uploading key.
func (e *S3Exporter) PresignPut(ctx context.Context, key string) (string, error) {
	pc, err := e.presignClient(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 config: %w", err)
	}

	req, err := pc.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String("application/json"),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", fmt.Errorf("presign put: %w", err)
	}
	return req.URL, nil
}

// Export uploads r and returns "s3://bucket/key".
func (e *S3Exporter) Export(ctx context.Context, r Report) (string, error) {
	b, err := encode(r)
	if err != nil {
		return "", err
	}

	key := e.ObjectKey()
	url, err := e.PresignPut(ctx, key)
	if err != nil {
		return "", err
	}
	if err := netx.UploadToPresignedURL(ctx, url, "application/json", b); err != nil {
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", e.cfg.Bucket, key), nil
}
