package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aakash-73/Se2-Project-v1/config"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	errs "github.com/aakash-73/Se2-Project-v1/pkg/errors"
	"github.com/aakash-73/Se2-Project-v1/pkg/logger"
	"github.com/aakash-73/Se2-Project-v1/pkg/metrics"
)

// maxResponseBytes caps a single backend response; PDFs are the largest payload
const maxResponseBytes = 64 << 20

// ErrResponseTooLarge a backend response body over the cap
var ErrResponseTooLarge = errors.New("backend response exceeds the size limit")

// Cookie backend session cookie captured at login
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Credentials cookies attached to credentialed backend calls
type Credentials []Cookie

// Client REST client for the syllabus backend
type Client struct {
	baseURL     string
	http        *http.Client
	timeout     time.Duration
	chatTimeout time.Duration
	maxBody     int64
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewClient creates a Client; m may be nil
func NewClient(cfg *config.BackendConfig, m *metrics.Metrics, logger *zap.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		http:        &http.Client{},
		timeout:     cfg.Timeout,
		chatTimeout: cfg.ChatTimeout,
		maxBody:     maxResponseBytes,
		metrics:     m,
		logger:      logger,
	}
}

// call one backend round trip
type call struct {
	op          string
	method      string
	path        string
	query       url.Values
	creds       Credentials
	body        io.Reader
	contentType string
	timeout     time.Duration
}

// result status, body and cookies of a successful round trip
type result struct {
	status  int
	body    []byte
	header  http.Header
	cookies []*http.Cookie
}

// errorBody backend error shape
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// messageBody backend success shape for mutations
type messageBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, cl call) (*result, error) {
	timeout := cl.timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, cl.body)
	if err != nil {
		return nil, errs.Network(cl.op, err)
	}
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	req.Header.Set("Accept", "application/json")
	if rid := logger.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}
	for _, ck := range cl.creds {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveBackend(cl.op, "network_error", time.Since(start))
		c.logger.Warn("backend unreachable",
			zap.String("op", cl.op),
			zap.String("path", cl.path),
			zap.Error(err),
		)
		return nil, errs.Network(cl.op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		c.metrics.ObserveBackend(cl.op, "network_error", time.Since(start))
		return nil, errs.Network(cl.op, err)
	}
	if int64(len(body)) > c.maxBody {
		c.metrics.ObserveBackend(cl.op, "network_error", time.Since(start))
		c.logger.Warn("backend response too large",
			zap.String("op", cl.op),
			zap.Int64("limit", c.maxBody),
		)
		return nil, errs.Malformed(cl.op, ErrResponseTooLarge)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.ObserveBackend(cl.op, "service_error", time.Since(start))
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		msg := eb.Error
		if msg == "" {
			msg = eb.Message
		}
		c.logger.Info("backend rejected request",
			zap.String("op", cl.op),
			zap.Int("status", resp.StatusCode),
			zap.String("error", msg),
		)
		return nil, errs.Service(cl.op, resp.StatusCode, msg)
	}

	c.metrics.ObserveBackend(cl.op, "ok", time.Since(start))
	return &result{
		status:  resp.StatusCode,
		body:    body,
		header:  resp.Header,
		cookies: resp.Cookies(),
	}, nil
}

func (c *Client) doJSON(ctx context.Context, cl call, payload interface{}) (*result, error) {
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: encode payload: %w", cl.op, err)
		}
		cl.body = bytes.NewReader(raw)
		cl.contentType = "application/json"
	}
	return c.do(ctx, cl)
}

func decode(op string, body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return errs.Malformed(op, err)
	}
	return nil
}

func message(body []byte) string {
	var mb messageBody
	_ = json.Unmarshal(body, &mb)
	return mb.Message
}

// multipartBody encodes text fields and an optional PDF part named syllabus_pdf
func multipartBody(fields [][2]string, file *model.PDFFile) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="syllabus_pdf"; filename=%q`, file.Name))
		h.Set("Content-Type", "application/pdf")
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
