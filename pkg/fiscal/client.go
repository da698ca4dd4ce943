package fiscal

import (
	"context"
	"crypto/x509"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/akretion/brazil-fiscal-client/pkg/binding"
	"github.com/akretion/brazil-fiscal-client/pkg/certificate"
	"github.com/akretion/brazil-fiscal-client/pkg/envelope"
	"github.com/akretion/brazil-fiscal-client/pkg/transport"
)

// Config holds client construction parameters.
type Config struct {
	// Ambiente selects production ("1") or homologation ("2").
	Ambiente Ambiente
	// UF is the IBGE code of the state whose authorizer is queried.
	UF UF
	// Versao is the service protocol version, e.g. "4.00".
	Versao string

	// PKCS12 is the raw certificate container. Empty means no client
	// identity: the connection is server-authenticated only, which is
	// enough for test servers.
	PKCS12         []byte
	PKCS12Password string

	// RootCAs overrides the system pool for server verification.
	RootCAs *x509.CertPool
	// InsecureSkipVerify disables server certificate verification.
	InsecureSkipVerify bool
	// Timeout bounds each call; the protocol has no mid-flight
	// cancellation, so this and the Send context are the only limits.
	Timeout time.Duration

	// PayloadCodec overrides the encoding/xml data binding.
	PayloadCodec envelope.PayloadCodec
	// Logger receives per-call debug records. Nil disables logging.
	Logger *slog.Logger
}

// Client drives one request/response cycle against a fiscal authority.
// All fields are read-only after NewClient; a single client may be shared
// by concurrent callers.
type Client struct {
	ambiente Ambiente
	uf       UF
	versao   string
	identity *certificate.Identity
	codec    *envelope.Codec
	http     *transport.Client
	logger   *slog.Logger
}

// NewClient validates the configuration and loads the certificate identity.
// Certificate problems surface here, before any network attempt.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	ambiente, err := ParseAmbiente(string(config.Ambiente))
	if err != nil {
		return nil, err
	}
	uf, err := ParseUF(string(config.UF))
	if err != nil {
		return nil, err
	}

	var identity *certificate.Identity
	if len(config.PKCS12) > 0 {
		identity, err = certificate.Load(config.PKCS12, config.PKCS12Password)
		if err != nil {
			return nil, err
		}
	}

	httpConfig := transport.DefaultConfig()
	httpConfig.Identity = identity
	httpConfig.RootCAs = config.RootCAs
	httpConfig.InsecureSkipVerify = config.InsecureSkipVerify
	if config.Timeout > 0 {
		httpConfig.Timeout = config.Timeout
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		ambiente: ambiente,
		uf:       uf,
		versao:   config.Versao,
		identity: identity,
		codec:    envelope.NewCodec(config.PayloadCodec),
		http:     transport.NewClient(httpConfig),
		logger:   logger,
	}, nil
}

// Ambiente returns the configured environment flag.
func (c *Client) Ambiente() Ambiente { return c.ambiente }

// UF returns the configured state code.
func (c *Client) UF() UF { return c.uf }

// Versao returns the configured protocol version.
func (c *Client) Versao() string { return c.versao }

// Identity returns the loaded certificate identity, or nil when the client
// was built without one.
func (c *Client) Identity() *certificate.Identity { return c.identity }

// Send resolves the operation endpoint for this client's state and
// environment, wraps the payload, posts it and maps the response into out.
//
// The first failure in the pipeline wins and keeps its kind: resolution
// errors, *transport.Error, envelope errors or *envelope.Fault. An HTTP
// error status whose body still carries a SOAP fault is reported as the
// fault, not as a transport error.
func (c *Client) Send(ctx context.Context, svc *binding.Service, operation string, payload, out any) error {
	res, err := svc.Resolve(operation, string(c.uf), string(c.ambiente))
	if err != nil {
		return err
	}

	data, err := c.codec.Wrap(&res.Operation, payload)
	if err != nil {
		return err
	}

	contentType := transport.ContentTypeSOAP11
	if res.SOAP12 {
		contentType = transport.ContentTypeSOAP12
	}

	callID := uuid.NewString()
	c.logger.Debug("sending SOAP request",
		"call", callID, "url", res.URL, "operation", operation, "bytes", len(data))

	raw, err := c.http.Send(ctx, &transport.Request{
		URL:         res.URL,
		Body:        data,
		ContentType: contentType,
		SOAPAction:  res.Action,
	})
	if err != nil {
		if fault := faultFromTransportError(c.codec, &res.Operation, err); fault != nil {
			c.logger.Debug("SOAP fault behind HTTP error status", "call", callID, "code", fault.Code)
			return fault
		}
		c.logger.Debug("transport failure", "call", callID, "error", err)
		return err
	}

	c.logger.Debug("received SOAP response", "call", callID, "bytes", len(raw))
	return c.codec.Unwrap(&res.Operation, raw, out)
}

// faultFromTransportError digs a SOAP fault out of an HTTP error body, if
// there is one. Authorizers report faults behind 500s.
func faultFromTransportError(codec *envelope.Codec, op *binding.Operation, err error) *envelope.Fault {
	var terr *transport.Error
	if !errors.As(err, &terr) || len(terr.Body) == 0 {
		return nil
	}

	var discard struct{}
	uerr := codec.Unwrap(op, terr.Body, &discard)

	var fault *envelope.Fault
	if errors.As(uerr, &fault) {
		return fault
	}
	return nil
}

// Timestamp returns the current time formatted the way the fiscal services
// expect (Brasília time with explicit offset).
func Timestamp(t time.Time) string {
	loc := time.FixedZone("BRT", -3*60*60)
	return t.In(loc).Format("2006-01-02T15:04:05-07:00")
}
