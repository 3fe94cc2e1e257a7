package cloudflare

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	gosimple "github.com/gosimple/slug"
)

func getS3Client() (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("R2_ACCESS_KEY"),
			os.Getenv("R2_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", os.Getenv("R2_ACCOUNT_ID")))
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return client, nil
}

func cdnBase() string {
	if base := os.Getenv("CDN_BASE_URL"); base != "" {
		return strings.TrimSuffix(base, "/")
	}
	return "https://cdn.agentpage.io"
}

// UploadConfig describes one object to upload. Kind groups objects under the
// profile's folder: "avatar", "cover" or "listings".
type UploadConfig struct {
	ProfileSlug string
	Kind        string
	Filename    string
	Body        *bytes.Buffer
	ContentType string
}

// Upload stores the object and returns the opaque reference the rest of the
// system keeps. The reference resolves through the CDN; callers never see
// bucket internals.
func Upload(cfg UploadConfig) (string, error) {
	safeSlug := gosimple.Make(cfg.ProfileSlug)

	ext := filepath.Ext(cfg.Filename)
	uniqueFilename := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.New().String(), ext)

	objectKey := filepath.Join("profiles", safeSlug, cfg.Kind, uniqueFilename)

	client, err := getS3Client()
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("R2_BUCKET_NAME")),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(cfg.Body.Bytes()),
		ContentType: aws.String(cfg.ContentType),
	}

	_, err = client.PutObject(context.TODO(), input)
	if err != nil {
		return "", fmt.Errorf("could not upload file to R2: %v", err)
	}

	return fmt.Sprintf("%s/%s", cdnBase(), objectKey), nil
}

// Delete removes the object behind a reference previously returned by
// Upload. References pointing outside our CDN are ignored.
func Delete(ref string) error {
	objectKey := objectKeyFromRef(ref)
	if objectKey == "" {
		return nil
	}

	client, err := getS3Client()
	if err != nil {
		return err
	}

	input := &s3.DeleteObjectInput{
		Bucket: aws.String(os.Getenv("R2_BUCKET_NAME")),
		Key:    aws.String(objectKey),
	}

	_, err = client.DeleteObject(context.TODO(), input)
	if err != nil {
		return fmt.Errorf("could not delete file from R2: %v", err)
	}

	return nil
}

func objectKeyFromRef(ref string) string {
	prefix := cdnBase() + "/"
	if !strings.HasPrefix(ref, prefix) {
		return ""
	}
	return strings.TrimPrefix(ref, prefix)
}
