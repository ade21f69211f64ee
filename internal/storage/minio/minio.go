// minio — архив загруженных документов в MinIO/S3.
// Реализует resources.DocumentArchive: объект кладётся под ключом
// {owner}/{id}/{docID}-{nome} с исходным Content-Type.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/brunosoares877/Crefaz/internal/config"
)

type DocumentArchive struct {
	bucket string
	client *mclient.Client
}

// New создаёт клиент MinIO. Endpoint может быть с схемой (http/https):
// она определяет Secure. Отсутствие бакета — ошибка старта.
func New(ctx context.Context, cfg config.S3Config) (*DocumentArchive, error) {
	const op = "storage/minio/New"

	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.RootUser, cfg.RootPassword, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.Bucket)
	}

	return &DocumentArchive{bucket: cfg.Bucket, client: client}, nil
}

// Put загружает содержимое документа.
func (a *DocumentArchive) Put(ctx context.Context, key string, data []byte, contentType string) error {
	const op = "storage/minio/Put"

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)),
		mclient.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
