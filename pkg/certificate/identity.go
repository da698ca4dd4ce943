package certificate

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"time"

	"software.sslmate.com/src/go-pkcs12"
)

var (
	// ErrDecode is returned for a malformed PKCS#12 container or a wrong
	// password.
	ErrDecode = errors.New("cannot decode PKCS#12 container")
	// ErrNoPrivateKey is returned when the container holds no private key.
	ErrNoPrivateKey = errors.New("no private key in PKCS#12 container")
	// ErrNoCertificate is returned when the container holds no leaf
	// certificate.
	ErrNoCertificate = errors.New("no certificate in PKCS#12 container")
	// ErrExpired is returned by Valid for a certificate outside its
	// validity window.
	ErrExpired = errors.New("certificate is not valid at this time")
)

// Identity is a TLS client identity extracted from a PKCS#12 container.
// It is immutable after Load and safe to share across goroutines.
type Identity struct {
	// Certificate is ready to present during a TLS handshake.
	Certificate tls.Certificate
	// Leaf is the parsed end-entity certificate.
	Leaf *x509.Certificate
	// CAChain holds any intermediate certificates bundled in the container.
	CAChain []*x509.Certificate
}

// Load decodes a PKCS#12 container into a client identity. The password may
// be empty if the container was protected with an empty password.
func Load(pkcs12Data []byte, password string) (*Identity, error) {
	key, leaf, caCerts, err := pkcs12.DecodeChain(pkcs12Data, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if key == nil {
		return nil, ErrNoPrivateKey
	}
	if leaf == nil {
		return nil, ErrNoCertificate
	}

	chain := [][]byte{leaf.Raw}
	for _, ca := range caCerts {
		chain = append(chain, ca.Raw)
	}

	return &Identity{
		Certificate: tls.Certificate{
			Certificate: chain,
			PrivateKey:  key,
			Leaf:        leaf,
		},
		Leaf:    leaf,
		CAChain: caCerts,
	}, nil
}

// Valid reports whether the leaf certificate is inside its validity window
// at the given instant.
func (id *Identity) Valid(now time.Time) error {
	if now.Before(id.Leaf.NotBefore) || now.After(id.Leaf.NotAfter) {
		return fmt.Errorf("%w: valid %s to %s", ErrExpired,
			id.Leaf.NotBefore.Format(time.RFC3339), id.Leaf.NotAfter.Format(time.RFC3339))
	}
	return nil
}

// Subject returns the subject of the leaf certificate, useful for logging.
func (id *Identity) Subject() string {
	return id.Leaf.Subject.String()
}
