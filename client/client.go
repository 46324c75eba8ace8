// Package client is the HTTP boundary to the bookstore backend. Every
// resource service goes through it: it attaches credentials and a request
// id, performs a single round trip, and normalizes failures into the
// backend's {message, status} envelope.
//
// There is no retry logic: each call is exactly one attempt.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/irsalhamdi/bookstore-admin/client/apierr"
	"github.com/irsalhamdi/bookstore-admin/client/creds"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const RequestIDHeader = "X-Request-Id"

type Config struct {
	URL     string
	Timeout time.Duration
	Creds   creds.Store
	Log     logrus.FieldLogger

	// OnUnauthorized runs after a 401 response has cleared the credential
	// store. The caller decides how to reach its login boundary.
	OnUnauthorized func()
}

type Client struct {
	base   string
	http   *http.Client
	creds  creds.Store
	log    logrus.FieldLogger
	onAuth func()
}

func New(cfg Config) *Client {
	log := cfg.Log
	if log == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		log = silent
	}

	return &Client{
		base:   strings.TrimRight(cfg.URL, "/"),
		http:   &http.Client{Timeout: cfg.Timeout},
		creds:  cfg.Creds,
		log:    log,
		onAuth: cfg.OnUnauthorized,
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method string, path string, query url.Values, body interface{}, out interface{}) error {
	addr := c.base + path
	if len(query) > 0 {
		addr += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("cannot marshal request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	r, err := http.NewRequestWithContext(ctx, method, addr, payload)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		if token, ok := c.creds.Token(); ok {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	}
	r.Header.Set(RequestIDHeader, uuid.NewString())

	log := c.log.WithFields(logrus.Fields{
		"req_id": r.Header.Get(RequestIDHeader),
		"method": method,
		"path":   path,
	})

	log.Info("started")
	startTime := time.Now().UTC()

	w, err := c.http.Do(r)
	if err != nil {
		log.WithField("since", time.Since(startTime).Nanoseconds()).Error("failed")
		return apierr.Wrap(err, "the bookstore service could not be reached", 0)
	}
	defer w.Body.Close()

	log.WithFields(logrus.Fields{
		"statuscode": w.StatusCode,
		"since":      time.Since(startTime).Nanoseconds(),
	}).Info("completed")

	if w.StatusCode < 200 || w.StatusCode > 299 {
		return c.fail(w)
	}

	if out == nil || w.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(w.Body).Decode(out); err != nil {
		return fmt.Errorf("cannot unmarshal response body: %w", err)
	}

	return nil
}

// fail turns a non-2xx response into an *apierr.Error, preferring the
// backend's own envelope when the body carries one. A 401 ends the session:
// the stored credential is cleared before the error is returned.
func (c *Client) fail(w *http.Response) error {
	e := apierr.New(http.StatusText(w.StatusCode), w.StatusCode)

	raw, err := io.ReadAll(w.Body)
	if err == nil && len(raw) > 0 {
		var envelope apierr.Error
		if uerr := json.Unmarshal(raw, &envelope); uerr == nil && envelope.Message != "" {
			e.Message = envelope.Message
		}
	}

	if w.StatusCode == http.StatusUnauthorized {
		if c.creds != nil {
			if cerr := c.creds.Clear(); cerr != nil {
				c.log.WithField("message", cerr).Error("clearing credentials")
			}
		}
		if c.onAuth != nil {
			c.onAuth()
		}
	}

	return e
}
