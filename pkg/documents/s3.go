package documents

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// DefaultPresignTTL is how long archive download links stay valid.
const DefaultPresignTTL = 15 * time.Minute

// Archive stores generated documents in an S3 bucket and hands out signed
// download URLs for them.
type Archive struct {
	client s3iface.S3API
	bucket string
	prefix string
	ttl    time.Duration
}

// NewS3Archive builds an Archive using the default AWS credential chain.
func NewS3Archive(region, bucket, prefix string, ttl time.Duration) (*Archive, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return NewArchive(s3.New(sess), bucket, prefix, ttl), nil
}

func NewArchive(client s3iface.S3API, bucket, prefix string, ttl time.Duration) *Archive {
	if ttl <= 0 {
		ttl = DefaultPresignTTL
	}
	return &Archive{client: client, bucket: bucket, prefix: prefix, ttl: ttl}
}

// Put uploads data under name and returns a pre-signed GET URL for it.
func (a *Archive) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := path.Join(a.prefix, name)

	_, err := a.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", a.bucket, key, err)
	}

	req, _ := a.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	signedURL, err := req.Presign(a.ttl)
	if err != nil {
		return "", fmt.Errorf("presign s3://%s/%s: %w", a.bucket, key, err)
	}
	return signedURL, nil
}
