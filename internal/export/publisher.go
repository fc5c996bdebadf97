package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"golang.org/x/sync/errgroup"
)

// Publisher errors.
var (
	ErrInvalidPublishConfig = errors.New("export: invalid publish configuration")
	ErrAccessDenied         = errors.New("export: access denied by object storage")
	ErrUploadFailed         = errors.New("export: upload failed")
)

// PublishConfig configures the S3-compatible target bucket.
type PublishConfig struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the AWS endpoint for S3-compatible providers.
	Endpoint  string
	PathStyle bool
	// Prefix is prepended to every object key.
	Prefix string
}

func (c PublishConfig) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return fmt.Errorf("%w: bucket and credentials are required", ErrInvalidPublishConfig)
	}
	return nil
}

// S3Publisher uploads an exported site tree to an S3-compatible bucket.
type S3Publisher struct {
	client *s3.Client
	cfg    PublishConfig
	log    *slog.Logger
}

// NewS3Publisher creates a publisher for the given bucket configuration.
func NewS3Publisher(cfg PublishConfig, log *slog.Logger) (*S3Publisher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3Publisher{
		client: s3.New(s3.Options{}, opts...),
		cfg:    cfg,
		log:    log,
	}, nil
}

// Publish walks the exported tree rooted at dir and uploads every file,
// keyed by its path relative to dir. Uploads run in parallel; the first
// failure aborts the publish.
func (p *S3Publisher) Publish(ctx context.Context, dir string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultParallelism)

	walkErr := filepath.WalkDir(dir, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, file)
		if err != nil {
			return err
		}
		key := path.Join(p.cfg.Prefix, filepath.ToSlash(rel))

		g.Go(func() error {
			return p.putFile(ctx, file, key)
		})
		return nil
	})
	if walkErr != nil {
		walkErr = fmt.Errorf("export: walk %s: %w", dir, walkErr)
	}

	// Join in-flight uploads even when the walk failed; their errors must
	// not be discarded.
	return errors.Join(walkErr, g.Wait())
}

func (p *S3Publisher) putFile(ctx context.Context, file, key string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.cfg.Bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(contentTypeFor(key)),
	})
	if err != nil {
		return p.wrapS3Error(ctx, key, err)
	}

	p.log.DebugContext(ctx, "object published",
		slog.String("key", key),
		slog.Int64("size", info.Size()))
	return nil
}

// wrapS3Error maps API error codes to sentinel errors. Uses %v for the
// original error so callers branch on sentinels with errors.Is rather than
// on AWS types.
func (p *S3Publisher) wrapS3Error(ctx context.Context, key string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		p.log.ErrorContext(ctx, "object storage rejected upload",
			slog.String("key", key),
			slog.String("code", apiErr.ErrorCode()),
			slog.String("message", apiErr.ErrorMessage()))

		switch apiErr.ErrorCode() {
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %s: %v", ErrAccessDenied, key, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrUploadFailed, key, err)
}

// contentTypeFor resolves the upload content type from the key's
// extension, defaulting to octet-stream.
func contentTypeFor(key string) string {
	ext := strings.ToLower(path.Ext(key))
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
