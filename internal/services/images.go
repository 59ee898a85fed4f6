package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/clubos/community-backend/internal/config"
)

// ImageService hands out presigned PUT URLs so clients upload project and
// profile images straight to the CDN bucket. The bucket is an opaque
// collaborator; nothing in the core reads objects back.
type ImageService struct {
	presigner *s3.PresignClient
	bucket    string
	expiry    time.Duration
}

func NewImageService(ctx context.Context, cfg *config.Config) (*ImageService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	return &ImageService{
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.S3Bucket,
		expiry:    cfg.UploadExpiry,
	}, nil
}

// PresignUpload returns the object key and a presigned PUT URL for it.
func (s *ImageService) PresignUpload(ctx context.Context, prefix, contentType string) (key, uploadURL string, err error) {
	key = fmt.Sprintf("%s/%s", prefix, uuid.New().String())

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", "", fmt.Errorf("presign upload: %w", err)
	}
	return key, req.URL, nil
}
