package printing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	infraconfig "github.com/maintenance/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultLogoRefresh      = 5 * time.Minute
	defaultLogoFetchTimeout = 10 * time.Second
)

// objectGetter is the subset of the S3 client used to fetch the logo
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3LogoProvider fetches the logo from an S3-compatible bucket (AWS S3,
// MinIO, RustFS, ...). The last probe result, found or not, is reused for
// the refresh interval. The lock only guards the cache: fetches run
// outside it, concurrent first fetches share one request, and while a
// refresh is in flight other callers get the previous result.
type S3LogoProvider struct {
	client       objectGetter
	bucket       string
	key          string
	refresh      time.Duration
	fetchTimeout time.Duration
	logger       *zap.Logger
	now          func() time.Time

	group singleflight.Group

	mu         sync.Mutex
	cached     *LogoAsset
	fetchedAt  time.Time
	refreshing bool
}

// S3LogoOption is a functional option for configuring S3LogoProvider
type S3LogoOption func(*S3LogoProvider)

// WithS3Logger sets a custom logger
func WithS3Logger(logger *zap.Logger) S3LogoOption {
	return func(p *S3LogoProvider) {
		p.logger = logger
	}
}

// WithLogoRefresh sets how long a probe result is reused
func WithLogoRefresh(d time.Duration) S3LogoOption {
	return func(p *S3LogoProvider) {
		p.refresh = d
	}
}

// NewS3LogoProvider creates an S3LogoProvider from storage configuration
func NewS3LogoProvider(cfg *infraconfig.StorageConfig, opts ...S3LogoOption) (*S3LogoProvider, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.LogoKey == "" {
		return nil, errors.New("storage logo key is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage access key and secret key are required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "http://localhost:9000"
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid storage endpoint: %w", err)
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		o.BaseEndpoint = aws.String(endpoint)
	})

	return newS3LogoProvider(client, cfg.Bucket, cfg.LogoKey, opts...), nil
}

func newS3LogoProvider(client objectGetter, bucket, key string, opts ...S3LogoOption) *S3LogoProvider {
	p := &S3LogoProvider{
		client:       client,
		bucket:       bucket,
		key:          key,
		refresh:      defaultLogoRefresh,
		fetchTimeout: defaultLogoFetchTimeout,
		logger:       zap.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p
}

// Logo implements LogoProvider. It waits for a fetch only when no earlier
// result exists or when it is the caller that starts the refresh, and
// never longer than ctx allows.
func (p *S3LogoProvider) Logo(ctx context.Context) (*LogoAsset, bool) {
	p.mu.Lock()
	stale, fetched := p.cached, !p.fetchedAt.IsZero()
	if fetched && (p.refreshing || p.now().Sub(p.fetchedAt) < p.refresh) {
		p.mu.Unlock()
		return stale, stale != nil
	}
	p.refreshing = true
	p.mu.Unlock()

	ch := p.group.DoChan(p.key, func() (any, error) {
		// Detached from the caller so a canceled render does not poison the
		// cache for everyone else
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.fetchTimeout)
		defer cancel()
		return p.store(p.fetch(fetchCtx)), nil
	})

	select {
	case res := <-ch:
		asset, _ := res.Val.(*LogoAsset)
		return asset, asset != nil
	case <-ctx.Done():
		return stale, stale != nil
	}
}

// store records a fetch result. A failed fetch counts as no logo until the
// next refresh.
func (p *S3LogoProvider) store(asset *LogoAsset, err error) *LogoAsset {
	if err != nil {
		p.logger.Warn("Failed to fetch logo from storage, rendering without it",
			zap.String("bucket", p.bucket),
			zap.String("key", p.key),
			zap.Error(err),
		)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.cached = asset
	p.fetchedAt = p.now()
	p.refreshing = false
	return asset
}

// fetch returns (nil, nil) when the object does not exist
func (p *S3LogoProvider) fetch(ctx context.Context) (*LogoAsset, error) {
	out, err := p.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		var notFound *types.NotFound
		if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
			p.logger.Debug("Logo object not found", zap.String("bucket", p.bucket), zap.String("key", p.key))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get logo object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxLogoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read logo object: %w", err)
	}
	asset, ok := NewLogoAsset("s3://"+p.bucket+"/"+p.key, data)
	if !ok {
		return nil, errors.New("logo object is not a PNG, JPEG or GIF image within size limits")
	}
	return asset, nil
}

var _ LogoProvider = (*S3LogoProvider)(nil)
