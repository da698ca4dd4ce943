package binding

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed endpoints.yaml
var defaultEndpoints []byte

// Catalog holds the service descriptors known to this process.
type Catalog struct {
	Services map[string]*Service `yaml:"services"`
}

// LoadCatalog reads a YAML catalog of services, operations and endpoints.
// Environment variable expansion is deliberately not performed: endpoint
// tables carry no secrets.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var catalog Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	for name, svc := range catalog.Services {
		svc.Name = name
		for opName, op := range svc.Operations {
			op.Name = opName
		}
	}

	return &catalog, nil
}

// Service returns the named service descriptor.
func (c *Catalog) Service(name string) (*Service, error) {
	svc, ok := c.Services[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, name)
	}
	return svc, nil
}

var defaultCatalog = mustCatalog(defaultEndpoints)

// DefaultCatalog returns the catalog embedded in this library, covering the
// NF-e 4.00 web services of the state authorizers and the SVRS/SVAN shared
// servers. The catalog is shared and must be treated as read-only.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func mustCatalog(data []byte) *Catalog {
	catalog, err := LoadCatalog(bytes.NewReader(data))
	if err != nil {
		panic("binding: invalid embedded endpoint catalog: " + err.Error())
	}
	return catalog
}
