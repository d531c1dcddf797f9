package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var storageClient *s3.Client
var storageBucket string
var publicBaseURL string

// InitStorage configures the S3-compatible client used for match cover
// photos. STORAGE_ENDPOINT may point at R2/MinIO; leave it empty for AWS.
func InitStorage() error {
	accessKeyID := os.Getenv("STORAGE_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("STORAGE_ACCESS_KEY_SECRET")
	storageBucket = os.Getenv("STORAGE_BUCKET")
	endpoint := os.Getenv("STORAGE_ENDPOINT")
	publicBaseURL = os.Getenv("STORAGE_PUBLIC_BASE_URL")
	if publicBaseURL == "" {
		publicBaseURL = endpoint
	}

	if accessKeyID == "" || accessKeySecret == "" || storageBucket == "" {
		return fmt.Errorf("storage credentials not configured")
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
	}
	if endpoint != "" {
		opts = append(opts, config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			}),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return fmt.Errorf("failed to load storage config: %w", err)
	}

	storageClient = s3.NewFromConfig(cfg)
	return nil
}

// UploadFile stores a multipart file under key and returns its public URL.
func UploadFile(fileHeader *multipart.FileHeader, key string) (string, error) {
	if storageClient == nil {
		return "", fmt.Errorf("storage not configured")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = storageClient.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(storageBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s", publicBaseURL, key), nil
}
