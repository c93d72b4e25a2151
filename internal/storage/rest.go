package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/internal/config"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// restClient speaks the storage service's REST API (supabase-storage
// compatible object endpoints).
type restClient struct {
	http     *resty.Client
	endpoint string
	clock    clock.Clock
	log      *zap.Logger
}

// NewRESTClient builds the production storage client.
func NewRESTClient(cfg config.StorageConfig, clk clock.Clock, log *zap.Logger) Client {
	httpClient := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetAuthToken(cfg.ServiceKey).
		SetTimeout(30 * time.Second)

	return &restClient{
		http:     httpClient,
		endpoint: cfg.Endpoint,
		clock:    clk,
		log:      log,
	}
}

type uploadResponse struct {
	Key string `json:"Key"`
}

func (c *restClient) Upload(ctx context.Context, bucket, path string, content io.Reader, opts UploadOptions) (UploadResult, error) {
	req := c.http.R().
		SetContext(ctx).
		SetBody(content).
		SetHeader("x-upsert", fmt.Sprintf("%t", opts.Upsert))

	if opts.ContentType != "" {
		req.SetHeader("Content-Type", opts.ContentType)
	}
	if opts.CacheControl != "" {
		req.SetHeader("Cache-Control", opts.CacheControl)
	}
	if len(opts.Metadata) > 0 {
		if meta, err := json.Marshal(opts.Metadata); err == nil {
			req.SetHeader("x-metadata", string(meta))
		}
	}

	resp, err := req.Post(objectPath(bucket, path))
	if err != nil || resp.IsError() {
		return UploadResult{}, c.fail(resp, err, "Failed to upload file")
	}

	var parsed uploadResponse
	_ = json.Unmarshal(resp.Body(), &parsed)
	confirmed := strings.TrimPrefix(parsed.Key, bucket+"/")
	if confirmed == "" {
		confirmed = path
	}

	return UploadResult{
		Bucket:   bucket,
		Path:     confirmed,
		FullPath: bucket + "/" + confirmed,
	}, nil
}

type signRequest struct {
	ExpiresIn int64      `json:"expiresIn"`
	Transform *Transform `json:"transform,omitempty"`
}

type signResponse struct {
	SignedURL string `json:"signedURL"`
	Expiry    int64  `json:"expiry,omitempty"`
}

func (c *restClient) CreateSignedURL(ctx context.Context, bucket, path string, opts SignedURLOptions) (SignedURL, error) {
	issuedAt := c.clock.Now()
	body := signRequest{
		ExpiresIn: int64(opts.ExpiresIn / time.Second),
		Transform: opts.Transform,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(signPath(bucket, path))
	if err != nil || resp.IsError() {
		return SignedURL{}, c.fail(resp, err, "Failed to create signed URL")
	}

	var parsed signResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil || parsed.SignedURL == "" {
		return SignedURL{}, repoerr.Wrap(err, "Failed to create signed URL")
	}

	signed := c.endpoint + parsed.SignedURL
	if opts.Download {
		name := opts.FileName
		if name == "" {
			name = "true"
		}
		sep := "?"
		if strings.Contains(signed, "?") {
			sep = "&"
		}
		signed += sep + "download=" + url.QueryEscape(name)
	}

	expiresAt := issuedAt.Add(opts.ExpiresIn)
	if parsed.Expiry > 0 {
		expiresAt = time.Unix(parsed.Expiry, 0).UTC()
	}

	return SignedURL{
		Bucket:    bucket,
		Path:      path,
		URL:       signed,
		ExpiresAt: expiresAt,
	}, nil
}

func (c *restClient) PublicURL(bucket, path string) string {
	return c.endpoint + "/object/public/" + bucket + "/" + escapePath(path)
}

type removeRequest struct {
	Prefixes []string `json:"prefixes"`
}

type removedObject struct {
	Name string `json:"name"`
}

func (c *restClient) Remove(ctx context.Context, bucket string, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return []string{}, nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(removeRequest{Prefixes: paths}).
		Delete("/object/" + bucket)
	if err != nil || resp.IsError() {
		return nil, c.fail(resp, err, "Failed to remove files")
	}

	var parsed []removedObject
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return paths, nil
	}
	removed := make([]string, 0, len(parsed))
	for _, obj := range parsed {
		removed = append(removed, obj.Name)
	}
	return removed, nil
}

type moveRequest struct {
	BucketID       string `json:"bucketId"`
	SourceKey      string `json:"sourceKey"`
	DestinationKey string `json:"destinationKey"`
}

func (c *restClient) Move(ctx context.Context, bucket, from, to string) (UploadResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(moveRequest{BucketID: bucket, SourceKey: from, DestinationKey: to}).
		Post("/object/move")
	if err != nil || resp.IsError() {
		return UploadResult{}, c.fail(resp, err, "Failed to move file")
	}

	return UploadResult{
		Bucket:   bucket,
		Path:     to,
		FullPath: bucket + "/" + to,
	}, nil
}

func (c *restClient) Download(ctx context.Context, bucket, path string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(objectPath(bucket, path))
	if err != nil || resp.IsError() {
		return nil, c.fail(resp, err, "Failed to download file")
	}
	return resp.Body(), nil
}

func (c *restClient) fail(resp *resty.Response, err error, failureMessage string) error {
	if err != nil {
		return repoerr.Wrap(err, failureMessage)
	}

	re := repoerr.New(fmt.Sprintf("%s: %s", failureMessage, strings.TrimSpace(string(resp.Body()))), resp.StatusCode())
	c.log.Warn("storage request failed",
		zap.Int("status", resp.StatusCode()),
		zap.String("url", resp.Request.URL),
	)
	return re
}

func objectPath(bucket, path string) string {
	return "/object/" + bucket + "/" + escapePath(path)
}

func signPath(bucket, path string) string {
	return "/object/sign/" + bucket + "/" + escapePath(path)
}

func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
