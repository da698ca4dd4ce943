package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/akretion/brazil-fiscal-client/pkg/certificate"
)

// TLS version constants
const (
	TLS12 = tls.VersionTLS12
	TLS13 = tls.VersionTLS13
)

// SOAP content types
const (
	ContentTypeSOAP11 = "text/xml; charset=utf-8"
	ContentTypeSOAP12 = "application/soap+xml; charset=utf-8"
)

// Config contains HTTPS client configuration.
type Config struct {
	// Identity is presented as the TLS client certificate when set.
	Identity *certificate.Identity
	// RootCAs overrides the system pool for server verification.
	RootCAs *x509.CertPool
	// InsecureSkipVerify disables server certificate verification. Some
	// authorizer chains are not in common system pools; prefer RootCAs.
	InsecureSkipVerify bool
	MinTLSVersion      uint16
	MaxTLSVersion      uint16
	Timeout            time.Duration
	IdleConnTimeout    time.Duration
}

// DefaultConfig returns a default HTTPS configuration.
func DefaultConfig() *Config {
	return &Config{
		MinTLSVersion:   TLS12,
		MaxTLSVersion:   TLS13,
		Timeout:         30 * time.Second,
		IdleConnTimeout: 90 * time.Second,
	}
}

// Error reports a transport-level failure: the request never completed, or
// the server answered with an HTTP error status. The response body is kept
// because fiscal servers sometimes put a SOAP fault behind an error status.
type Error struct {
	URL        string
	StatusCode int
	Body       []byte
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport: %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("transport: %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Request is one SOAP POST.
type Request struct {
	URL         string
	Body        []byte
	ContentType string
	// SOAPAction is sent as the SOAPAction header when non-empty.
	SOAPAction string
}

// Client sends SOAP envelopes over HTTPS.
type Client struct {
	client *http.Client
	config *Config
}

// NewClient creates a new HTTPS client. A nil config selects DefaultConfig.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	tlsConfig := &tls.Config{
		MinVersion:         config.MinTLSVersion,
		MaxVersion:         config.MaxTLSVersion,
		RootCAs:            config.RootCAs,
		InsecureSkipVerify: config.InsecureSkipVerify,
	}
	if config.Identity != nil {
		tlsConfig.Certificates = []tls.Certificate{config.Identity.Certificate}
	}

	transport := &http.Transport{
		TLSClientConfig:     tlsConfig,
		IdleConnTimeout:     config.IdleConnTimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		config: config,
	}
}

// Send posts one envelope and returns the raw response body. A single
// attempt is made; retry policy is the caller's concern.
func (c *Client) Send(ctx context.Context, req *Request) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, &Error{URL: req.URL, Err: err}
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = ContentTypeSOAP11
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("User-Agent", "brazil-fiscal-client/1.0")
	if req.SOAPAction != "" {
		httpReq.Header.Set("SOAPAction", `"`+req.SOAPAction+`"`)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &Error{URL: req.URL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: req.URL, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &Error{URL: req.URL, StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}
