package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roomwaves/roomwaves/internal/model"
)

const maxErrorBody = 4 << 10

// HTTPDoer describes the HTTP client used by Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements model.AnalysisAPI over the backend's HTTP API.
type Client struct {
	cfg     Config
	baseURL *url.URL
	http    HTTPDoer
	logger  *zap.Logger
}

var _ model.AnalysisAPI = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(d HTTPDoer) Option {
	return func(c *Client) { c.http = d }
}

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New validates cfg and returns a client holding a private copy of it.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.clone()
	base, err := cfg.parseBaseURL()
	if err != nil {
		return nil, err
	}
	c := &Client{
		cfg:     cfg,
		baseURL: base,
		http:    http.DefaultClient,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config {
	return c.cfg.clone()
}

func (c *Client) Waveform(ctx context.Context, key string) (model.Series, error) {
	var out model.Series
	err := c.getJSON(ctx, "waveform", keyPath("/api/plot", key), nil, &out)
	return out, err
}

func (c *Client) FrequencyResponse(ctx context.Context, key string, bands int) (model.FrequencyResponse, error) {
	var out model.FrequencyResponse
	err := c.getJSON(ctx, "frequency response", keyPath("/api/frequency-response", key), bandsQuery(bands), &out)
	return out, err
}

func (c *Client) EnvelopeDb(ctx context.Context, key string) (model.Series, error) {
	var out model.Series
	err := c.getJSON(ctx, "envelope", keyPath("/api/envelope-db", key), nil, &out)
	return out, err
}

func (c *Client) Spectrogram(ctx context.Context, key string) (model.TimeFrequencyMap, error) {
	var out model.TimeFrequencyMap
	err := c.getJSON(ctx, "spectrogram", keyPath("/api/spectrogram", key), nil, &out)
	return out, err
}

func (c *Client) Surface(ctx context.Context, key string, bands int) (model.TimeFrequencyMap, error) {
	var out model.TimeFrequencyMap
	err := c.getJSON(ctx, "surface", keyPath("/api/csd", key), bandsQuery(bands), &out)
	return out, err
}

func (c *Client) Parameters(ctx context.Context, key string, bands int) (model.ParametersResult, error) {
	var out model.ParametersResult
	err := c.getJSON(ctx, "parameters", keyPath("/api/parameters", key), bandsQuery(bands), &out)
	return out, err
}

func (c *Client) SNR(ctx context.Context, key string) (model.SNRResult, error) {
	var out model.SNRResult
	err := c.getJSON(ctx, "snr", keyPath("/api/snr", key), nil, &out)
	return out, err
}

func (c *Client) FileURL(ctx context.Context, key string) (model.FileURL, error) {
	var out model.FileURL
	err := c.getJSON(ctx, "file url", keyPath("/api/file-url", key), nil, &out)
	return out, err
}

func (c *Client) Signal(ctx context.Context, req model.SignalRequest) (model.SweepSignals, error) {
	q := url.Values{}
	q.Set("duration", strconv.FormatFloat(req.Duration, 'f', -1, 64))
	q.Set("f_inf", strconv.Itoa(req.FInf))
	q.Set("f_sup", strconv.Itoa(req.FSup))
	q.Set("fs", strconv.Itoa(req.FS))

	var out model.SweepSignals
	err := c.getJSON(ctx, "signal", "/api/signal", q, &out)
	return out, err
}

// Upload sends r as the multipart field "file".
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (model.UploadResult, error) {
	var out model.UploadResult
	err := c.postMultipart(ctx, "upload", "/api/upload", func(w *multipart.Writer) error {
		return writeFilePart(w, "file", filename, r)
	}, &out)
	return out, err
}

// CalculateIR uploads a recorded sweep and its inverse filter for deconvolution.
func (c *Client) CalculateIR(ctx context.Context, req model.ImpulseResponseRequest) (model.ImpulseResponseResult, error) {
	factor := req.DurationFactor
	if factor <= 0 {
		factor = model.DefaultDurationFactor
	}

	var out model.ImpulseResponseResult
	err := c.postMultipart(ctx, "calculate ir", "/api/calculate-ir", func(w *multipart.Writer) error {
		if err := writeFilePart(w, "recorded_sweep", req.SweepName, bytes.NewReader(req.Sweep)); err != nil {
			return err
		}
		if err := writeFilePart(w, "inverse_filter", req.InverseName, bytes.NewReader(req.Inverse)); err != nil {
			return err
		}
		return w.WriteField("duration_factor", strconv.FormatFloat(factor, 'f', -1, 64))
	}, &out)
	return out, err
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, dest any) error {
	req, cancel, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return fmt.Errorf("apiclient: %s: %w", op, err)
	}
	defer cancel()
	return c.do(op, req, dest)
}

func (c *Client) postMultipart(ctx context.Context, op, path string, build func(*multipart.Writer) error, dest any) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := build(w); err != nil {
		return fmt.Errorf("apiclient: %s: build form: %w", op, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("apiclient: %s: close form: %w", op, err)
	}

	req, cancel, err := c.newRequest(ctx, http.MethodPost, path, nil, &body)
	if err != nil {
		return fmt.Errorf("apiclient: %s: %w", op, err)
	}
	defer cancel()
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(op, req, dest)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, context.CancelFunc, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cancel := context.CancelFunc(func() {})
	if c.cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + path
	u.RawPath = strings.TrimRight(c.baseURL.EscapedPath(), "/") + escapedPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, cancel, nil
}

func (c *Client) do(op string, req *http.Request, dest any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.String("request_id", req.Header.Get("X-Request-ID")),
			zap.Error(err))
		return fmt.Errorf("apiclient: %s: %w", op, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("apiclient: %s: decode response: %w", op, err)
	}
	return nil
}

func writeFilePart(w *multipart.Writer, field, filename string, r io.Reader) error {
	if filename == "" {
		filename = field
	}
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, r)
	return err
}

// keyPath joins prefix with key. Keys may contain slashes (for example
// "uploads/abc.wav"); each segment is escaped separately.
func keyPath(prefix, key string) string {
	return prefix + "/" + strings.TrimLeft(key, "/")
}

func escapedPath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

func bandsQuery(bands int) url.Values {
	return url.Values{"bands": []string{strconv.Itoa(bands)}}
}
