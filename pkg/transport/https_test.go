package transport

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/akretion/brazil-fiscal-client/pkg/certificate"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.MinTLSVersion != TLS12 {
		t.Errorf("expected MinTLSVersion TLS12, got %d", config.MinTLSVersion)
	}
	if config.MaxTLSVersion != TLS13 {
		t.Errorf("expected MaxTLSVersion TLS13, got %d", config.MaxTLSVersion)
	}
	if config.Timeout != 30*time.Second {
		t.Errorf("expected Timeout 30s, got %v", config.Timeout)
	}
	if config.Identity != nil {
		t.Error("expected no default identity")
	}
}

func serverPool(srv *httptest.Server) *x509.CertPool {
	pool := x509.NewCertPool()
	pool.AddCert(srv.Certificate())
	return pool
}

func TestSend(t *testing.T) {
	var gotContentType, gotSOAPAction, gotBody string
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotContentType = r.Header.Get("Content-Type")
		gotSOAPAction = r.Header.Get("SOAPAction")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte("<ok/>"))
	}))
	defer srv.Close()

	client := NewClient(&Config{RootCAs: serverPool(srv)})
	resp, err := client.Send(context.Background(), &Request{
		URL:         srv.URL,
		Body:        []byte("<envelope/>"),
		ContentType: ContentTypeSOAP12,
		SOAPAction:  "http://www.portalfiscal.inf.br/nfe/wsdl/NFeStatusServico4/nfeStatusServicoNF",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(resp) != "<ok/>" {
		t.Errorf("unexpected response body: %q", resp)
	}
	if gotBody != "<envelope/>" {
		t.Errorf("unexpected request body: %q", gotBody)
	}
	if gotContentType != ContentTypeSOAP12 {
		t.Errorf("unexpected content type: %q", gotContentType)
	}
	if !strings.Contains(gotSOAPAction, "nfeStatusServicoNF") {
		t.Errorf("unexpected SOAPAction: %q", gotSOAPAction)
	}
}

func TestSend_DefaultContentType(t *testing.T) {
	var gotContentType string
	var hasSOAPAction bool
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_, hasSOAPAction = r.Header["Soapaction"]
		w.Write([]byte("<ok/>"))
	}))
	defer srv.Close()

	client := NewClient(&Config{RootCAs: serverPool(srv)})
	_, err := client.Send(context.Background(), &Request{URL: srv.URL, Body: []byte("<e/>")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotContentType != ContentTypeSOAP11 {
		t.Errorf("expected SOAP 1.1 content type by default, got %q", gotContentType)
	}
	if hasSOAPAction {
		t.Error("expected no SOAPAction header when the descriptor has none")
	}
}

func TestSend_HTTPError(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer srv.Close()

	client := NewClient(&Config{RootCAs: serverPool(srv)})
	_, err := client.Send(context.Background(), &Request{URL: srv.URL, Body: []byte("<e/>")})
	if err == nil {
		t.Fatal("expected error")
	}

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *transport.Error, got %T", err)
	}
	if terr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", terr.StatusCode)
	}
	if string(terr.Body) != "Internal Server Error" {
		t.Errorf("expected error body to be captured, got %q", terr.Body)
	}
}

func TestSend_ConnectionFailure(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(nil)
	_, err := client.Send(context.Background(), &Request{URL: url, Body: []byte("<e/>")})
	if err == nil {
		t.Fatal("expected error")
	}

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *transport.Error, got %T", err)
	}
	if terr.StatusCode != 0 {
		t.Errorf("expected status 0 for connection failure, got %d", terr.StatusCode)
	}
}

func testIdentity(t *testing.T) *certificate.Identity {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "EMPRESA TESTE LTDA"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}
	leaf, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatal(err)
	}

	return &certificate.Identity{
		Certificate: tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key, Leaf: leaf},
		Leaf:        leaf,
	}
}

func TestSend_ClientCertificate(t *testing.T) {
	var peerCerts int
	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		peerCerts = len(r.TLS.PeerCertificates)
		w.Write([]byte("<ok/>"))
	}))
	srv.TLS = &tls.Config{ClientAuth: tls.RequireAnyClientCert}
	srv.StartTLS()
	defer srv.Close()

	client := NewClient(&Config{
		Identity: testIdentity(t),
		RootCAs:  serverPool(srv),
	})
	_, err := client.Send(context.Background(), &Request{URL: srv.URL, Body: []byte("<e/>")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if peerCerts == 0 {
		t.Error("expected the client certificate to be presented")
	}
}
