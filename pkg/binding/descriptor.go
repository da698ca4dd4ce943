package binding

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEndpointNotFound is returned when no endpoint matches a
	// region/environment combination.
	ErrEndpointNotFound = errors.New("endpoint not found")
	// ErrUnknownOperation is returned when a service has no operation
	// with the requested name.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrUnknownService is returned when a catalog has no service with
	// the requested name.
	ErrUnknownService = errors.New("unknown service")
)

// Shape selects where an operation's payload lives inside the SOAP body.
//
// Shape is an open string type: fiscal WSDLs are not uniform, and tables
// loaded from external catalogs may carry shapes this version does not know.
// The envelope codec rejects unknown values instead of guessing.
type Shape string

const (
	// ShapeBare places the serialized payload directly as the sole body child.
	ShapeBare Shape = "bare"
	// ShapeWrapped nests the payload inside an operation-named wrapper
	// element (the nfeDadosMsg pattern used by the NF-e services).
	ShapeWrapped Shape = "wrapped"
)

// Operation describes one SOAP operation of a fiscal web service.
// Values are read-only once constructed.
type Operation struct {
	// Name is the WSDL operation name, e.g. "nfeStatusServicoNF".
	Name string `yaml:"-"`
	// Action is the SOAPAction URI expected by the service.
	Action string `yaml:"action"`
	// Namespace is the payload namespace, e.g.
	// "http://www.portalfiscal.inf.br/nfe".
	Namespace string `yaml:"namespace"`
	// WSDLNamespace qualifies the wrapper elements for wrapped operations.
	WSDLNamespace string `yaml:"wsdlNamespace"`
	// Shape selects bare or wrapped payload placement.
	Shape Shape `yaml:"shape"`
	// RequestWrapper and ResponseWrapper name the wrapper elements for
	// wrapped operations ("nfeDadosMsg" / "nfeResultMsg").
	RequestWrapper  string `yaml:"requestWrapper"`
	ResponseWrapper string `yaml:"responseWrapper"`
	// Path is appended to the resolved server URL.
	Path string `yaml:"path"`
	// SOAP12 selects the SOAP 1.2 envelope and content type.
	SOAP12 bool `yaml:"soap12"`
}

// Service groups the operations and endpoints of one fiscal service.
type Service struct {
	Name    string `yaml:"-"`
	Version string `yaml:"version"`
	// Operations indexed by WSDL operation name.
	Operations map[string]*Operation `yaml:"operations"`
	// Endpoints maps environment ("1" production, "2" homologation) to
	// IBGE region code to server base URL.
	Endpoints map[string]map[string]string `yaml:"endpoints"`
}

// ResolvedOperation is an Operation bound to a concrete endpoint URL.
type ResolvedOperation struct {
	Operation
	URL string
}

// Resolve selects the endpoint for the given region code and environment and
// returns the operation descriptor bound to it. The binding shape is a static
// property of the descriptor and is surfaced unchanged.
func (s *Service) Resolve(operation, region, environment string) (*ResolvedOperation, error) {
	op, ok := s.Operations[operation]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownOperation, s.Name, operation)
	}

	servers, ok := s.Endpoints[environment]
	if !ok {
		return nil, fmt.Errorf("%w: service %s has no environment %q", ErrEndpointNotFound, s.Name, environment)
	}
	server, ok := servers[region]
	if !ok {
		return nil, fmt.Errorf("%w: service %s, region %s, environment %s", ErrEndpointNotFound, s.Name, region, environment)
	}

	resolved := *op
	resolved.Name = operation
	return &ResolvedOperation{
		Operation: resolved,
		URL:       strings.TrimSuffix(server, "/") + op.Path,
	}, nil
}
