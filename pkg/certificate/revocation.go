package certificate

import (
	"bytes"
	"context"
	"crypto"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/crypto/ocsp"
)

var (
	// ErrRevoked is returned when the responder reports the certificate
	// as revoked.
	ErrRevoked = errors.New("certificate has been revoked")
	// ErrNoOCSPServer is returned when the certificate carries no OCSP
	// responder URL.
	ErrNoOCSPServer = errors.New("certificate has no OCSP server")
	// ErrNoIssuer is returned when no issuer certificate is available to
	// build the OCSP request.
	ErrNoIssuer = errors.New("no issuer certificate available")
)

// OCSPConfig configures revocation checking.
type OCSPConfig struct {
	// HTTPClient for OCSP requests (optional).
	HTTPClient *http.Client
	// Timeout for OCSP requests.
	Timeout time.Duration
}

// DefaultOCSPConfig returns the default configuration.
func DefaultOCSPConfig() *OCSPConfig {
	return &OCSPConfig{
		Timeout: 10 * time.Second,
	}
}

// OCSPChecker checks certificate revocation status against the OCSP
// responder named in the certificate.
type OCSPChecker struct {
	httpClient *http.Client
}

// NewOCSPChecker creates a new OCSP checker.
func NewOCSPChecker(config *OCSPConfig) *OCSPChecker {
	if config == nil {
		config = DefaultOCSPConfig()
	}

	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}

	return &OCSPChecker{httpClient: client}
}

// CheckIdentity checks the revocation status of a loaded identity, using the
// first bundled CA certificate as the issuer.
func (c *OCSPChecker) CheckIdentity(ctx context.Context, id *Identity) error {
	if len(id.CAChain) == 0 {
		return ErrNoIssuer
	}
	return c.Check(ctx, id.Leaf, id.CAChain[0])
}

// Check checks whether cert has been revoked by its issuer. It returns nil
// for a good status, ErrRevoked for a revoked certificate and other errors
// when the status cannot be determined.
func (c *OCSPChecker) Check(ctx context.Context, cert, issuer *x509.Certificate) error {
	if cert == nil || issuer == nil {
		return ErrNoIssuer
	}
	if len(cert.OCSPServer) == 0 {
		return ErrNoOCSPServer
	}

	reqData, err := ocsp.CreateRequest(cert, issuer, &ocsp.RequestOptions{Hash: crypto.SHA256})
	if err != nil {
		return fmt.Errorf("creating OCSP request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, cert.OCSPServer[0], bytes.NewReader(reqData))
	if err != nil {
		return fmt.Errorf("creating OCSP HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/ocsp-request")
	httpReq.Header.Set("Accept", "application/ocsp-response")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("querying OCSP responder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("OCSP responder returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading OCSP response: %w", err)
	}

	ocspResp, err := ocsp.ParseResponseForCert(body, cert, issuer)
	if err != nil {
		return fmt.Errorf("parsing OCSP response: %w", err)
	}

	switch ocspResp.Status {
	case ocsp.Good:
		return nil
	case ocsp.Revoked:
		return fmt.Errorf("%w: at %s", ErrRevoked, ocspResp.RevokedAt.Format(time.RFC3339))
	default:
		return fmt.Errorf("OCSP status unknown for certificate %s", cert.Subject)
	}
}
