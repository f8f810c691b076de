package env

import (
	"context"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/colinmarc/hdfs/v2"
	"github.com/pkg/errors"
)

// Fetcher downloads a remote artifact into a local directory and returns the
// local path of the downloaded file.
type Fetcher interface {
	Fetch(ctx context.Context, uri string, destDir string) (string, error)
}

// ForURI selects a fetcher by the URI's scheme. Plain paths and file:// URIs
// resolve to the local fetcher; s3:// and hdfs:// resolve to their respective
// remote fetchers.
func ForURI(ctx context.Context, uri string) (Fetcher, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "unparseable artifact URI %q", uri)
	}

	switch parsed.Scheme {
	case "", "file":
		return &LocalFetcher{}, nil
	case "s3":
		return NewS3Fetcher(ctx)
	case "hdfs":
		return &HDFSFetcher{}, nil
	default:
		return nil, errors.Errorf("unsupported artifact scheme %q in %q", parsed.Scheme, uri)
	}
}

// LocalFetcher copies a file already present on the node's filesystem.
type LocalFetcher struct{}

func (f *LocalFetcher) Fetch(_ context.Context, uri string, destDir string) (string, error) {
	src := strings.TrimPrefix(uri, "file://")

	in, err := os.Open(src)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open local artifact %s", src)
	}
	defer in.Close()

	dest := filepath.Join(destDir, filepath.Base(src))
	out, err := os.Create(dest)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create %s", dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", errors.Wrapf(err, "failed to copy %s to %s", src, dest)
	}
	return dest, nil
}

// S3Fetcher downloads artifacts from S3 using the ambient AWS credentials.
type S3Fetcher struct {
	client *s3.Client
}

func NewS3Fetcher(ctx context.Context) (*S3Fetcher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS configuration")
	}
	return &S3Fetcher{client: s3.NewFromConfig(cfg)}, nil
}

func (f *S3Fetcher) Fetch(ctx context.Context, uri string, destDir string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", errors.Wrapf(err, "unparseable S3 URI %q", uri)
	}
	bucket := parsed.Host
	key := strings.TrimPrefix(parsed.Path, "/")

	obj, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to fetch s3://%s/%s", bucket, key)
	}
	defer obj.Body.Close()

	dest := filepath.Join(destDir, path.Base(key))
	out, err := os.Create(dest)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create %s", dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, obj.Body); err != nil {
		return "", errors.Wrapf(err, "failed to write s3://%s/%s to %s", bucket, key, dest)
	}
	return dest, nil
}

// HDFSFetcher downloads artifacts from HDFS. A fresh client is dialed per
// fetch; the namenode address comes from the URI's authority.
type HDFSFetcher struct{}

func (f *HDFSFetcher) Fetch(_ context.Context, uri string, destDir string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", errors.Wrapf(err, "unparseable HDFS URI %q", uri)
	}

	client, err := hdfs.New(parsed.Host)
	if err != nil {
		return "", errors.Wrapf(err, "failed to connect to HDFS namenode %s", parsed.Host)
	}
	defer client.Close()

	in, err := client.Open(parsed.Path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open HDFS artifact %s", parsed.Path)
	}
	defer in.Close()

	dest := filepath.Join(destDir, path.Base(parsed.Path))
	out, err := os.Create(dest)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create %s", dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", errors.Wrapf(err, "failed to write HDFS artifact %s to %s", parsed.Path, dest)
	}
	return dest, nil
}
