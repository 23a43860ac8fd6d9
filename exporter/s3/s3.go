/*
 * Copyright (c) 2023 Gilles Chehade <gilles@poolp.org>
 *
 * Permission to use, copy, modify, and distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/PlakarLabs/hoard/exporter"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Exporter struct {
	minioClient *minio.Client
	bucket      string
	prefix      string
}

func init() {
	exporter.Register("s3", NewS3Exporter)
}

func connect(location *url.URL) (*minio.Client, error) {
	endpoint := location.Host
	accessKeyID := location.User.Username()
	secretAccessKey, _ := location.User.Password()
	useSSL := location.Query().Get("tls") == "true"

	// Initialize minio client object.
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
}

func NewS3Exporter(location string) (exporter.ExporterBackend, error) {
	parsed, err := url.Parse(location)
	if err != nil {
		return nil, err
	}

	conn, err := connect(parsed)
	if err != nil {
		return nil, err
	}

	// s3://key:secret@host/bucket/some/prefix
	bucket, prefix, _ := strings.Cut(strings.TrimPrefix(parsed.Path, "/"), "/")
	if bucket == "" {
		return nil, fmt.Errorf("s3 location %s has no bucket", parsed.Redacted())
	}

	err = conn.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
			return nil, err
		}
	}

	return &S3Exporter{
		minioClient: conn,
		bucket:      bucket,
		prefix:      prefix,
	}, nil
}

func (p *S3Exporter) objectName(name string) string {
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

func (p *S3Exporter) Root() string {
	return path.Join("/", p.bucket, p.prefix)
}

func (p *S3Exporter) StoreFile(name string, fp io.Reader) error {
	_, err := p.minioClient.PutObject(context.Background(),
		p.bucket,
		p.objectName(name),
		fp, -1, minio.PutObjectOptions{ContentType: "application/octet-stream"})
	return err
}

func (p *S3Exporter) Close() error {
	return nil
}
