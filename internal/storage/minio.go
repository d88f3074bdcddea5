package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// How long a resolved file pointer stays usable. Deliberately shorter than
// the download token TTL: the pointer is handed out only after authorization
// and should not outlive it by much.
const pointerExpiry = 10 * time.Minute

// BlobStore resolves product objects to short-lived presigned URLs. The
// subsystem never reads or writes file payloads; the pointer is the only
// thing it hands out.
type BlobStore struct {
	client *minio.Client
	bucket string
}

func NewBlobStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*BlobStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		log.Printf("Warning: Failed to check bucket existence: %v", err)
	} else if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			log.Printf("Warning: Failed to create bucket: %v", err)
		} else {
			log.Printf("Created bucket: %s", bucket)
		}
	}

	return &BlobStore{client: client, bucket: bucket}, nil
}

// DownloadURL returns a presigned GET URL for the object.
func (b *BlobStore) DownloadURL(ctx context.Context, objectName string) (string, error) {
	url, err := b.client.PresignedGetObject(ctx, b.bucket, objectName, pointerExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate download link: %w", err)
	}
	return url.String(), nil
}
