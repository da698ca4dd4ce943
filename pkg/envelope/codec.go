package envelope

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"github.com/akretion/brazil-fiscal-client/pkg/binding"
)

// SOAP envelope namespaces
const (
	NsSOAP11 = "http://schemas.xmlsoap.org/soap/envelope/"
	NsSOAP12 = "http://www.w3.org/2003/05/soap-envelope"
)

var (
	// ErrMalformed is returned for XML that cannot be parsed or that is
	// not a SOAP envelope.
	ErrMalformed = errors.New("malformed envelope")
	// ErrEmptyBody is returned when the body (or wrapper) has no payload
	// element.
	ErrEmptyBody = errors.New("empty SOAP body")
	// ErrMissingWrapper is returned when a wrapped operation's response
	// lacks the expected wrapper element. The response shape is bound to
	// the operation; falling back to a bare unwrap would hide a protocol
	// violation.
	ErrMissingWrapper = errors.New("response wrapper element not found")
	// ErrUnsupportedShape is returned for binding shapes this codec does
	// not know.
	ErrUnsupportedShape = errors.New("unsupported binding shape")
)

// Codec wraps and unwraps payloads in SOAP envelopes according to an
// operation's binding shape. The zero-value-like NewCodec(nil) codec uses
// encoding/xml for payload serialization.
type Codec struct {
	payload PayloadCodec
}

// NewCodec creates a codec delegating payload serialization to the given
// PayloadCodec. A nil codec selects the encoding/xml default.
func NewCodec(payload PayloadCodec) *Codec {
	if payload == nil {
		payload = XMLCodec{}
	}
	return &Codec{payload: payload}
}

// Wrap serializes the payload and places it inside a SOAP envelope at the
// location selected by the operation's binding shape.
func (c *Codec) Wrap(op *binding.Operation, payload any) ([]byte, error) {
	data, err := c.payload.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}

	payloadDoc := etree.NewDocument()
	if err := payloadDoc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: payload is not well-formed XML: %v", ErrMalformed, err)
	}
	root := payloadDoc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: payload has no root element", ErrMalformed)
	}
	// the Fazenda rejects unqualified payloads; qualify from the
	// descriptor when the binding layer left the namespace off
	if op.Namespace != "" && root.SelectAttr("xmlns") == nil {
		root.CreateAttr("xmlns", op.Namespace)
	}

	envNS := NsSOAP11
	if op.SOAP12 {
		envNS = NsSOAP12
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	env := doc.CreateElement("soapenv:Envelope")
	env.CreateAttr("xmlns:soapenv", envNS)
	env.CreateElement("soapenv:Header")
	body := env.CreateElement("soapenv:Body")

	switch op.Shape {
	case binding.ShapeBare:
		body.AddChild(root.Copy())
	case binding.ShapeWrapped:
		if op.RequestWrapper == "" {
			return nil, fmt.Errorf("%w: wrapped operation %q has no request wrapper", ErrUnsupportedShape, op.Name)
		}
		wrapper := body.CreateElement(op.RequestWrapper)
		if op.WSDLNamespace != "" {
			wrapper.CreateAttr("xmlns", op.WSDLNamespace)
		}
		wrapper.AddChild(root.Copy())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedShape, op.Shape)
	}

	return doc.WriteToBytes()
}

// Unwrap inspects the response envelope and either deserializes the payload
// into out or returns a *Fault when the body's first child is a fault
// element. Elements are matched by local name so SOAP 1.1 and 1.2 responses
// are both accepted.
func (c *Codec) Unwrap(op *binding.Operation, raw []byte, out any) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "Envelope" {
		return fmt.Errorf("%w: missing Envelope element", ErrMalformed)
	}
	body := childElement(root, "Body")
	if body == nil {
		return fmt.Errorf("%w: missing Body element", ErrMalformed)
	}
	first := firstElement(body)
	if first == nil {
		return ErrEmptyBody
	}
	if first.Tag == "Fault" {
		return parseFault(first)
	}

	payload := first
	switch op.Shape {
	case binding.ShapeBare:
	case binding.ShapeWrapped:
		if op.ResponseWrapper == "" || first.Tag != op.ResponseWrapper {
			return fmt.Errorf("%w: expected %q, body has %q", ErrMissingWrapper, op.ResponseWrapper, first.Tag)
		}
		payload = firstElement(first)
		if payload == nil {
			return fmt.Errorf("%w: wrapper %q is empty", ErrEmptyBody, op.ResponseWrapper)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedShape, op.Shape)
	}

	extracted := payload.Copy()
	// servers frequently declare the default namespace on an ancestor;
	// reattach it so the extracted fragment stays qualified
	if op.Namespace != "" && extracted.SelectAttr("xmlns") == nil {
		extracted.CreateAttr("xmlns", op.Namespace)
	}

	payloadDoc := etree.NewDocument()
	payloadDoc.SetRoot(extracted)
	data, err := payloadDoc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serializing response payload: %w", err)
	}

	if err := c.payload.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decoding response payload: %v", ErrMalformed, err)
	}
	return nil
}

// childElement returns the first child with the given local name, ignoring
// namespace prefixes.
func childElement(parent *etree.Element, local string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if child.Tag == local {
			return child
		}
	}
	return nil
}

// firstElement returns the first element child, skipping character data.
func firstElement(parent *etree.Element) *etree.Element {
	children := parent.ChildElements()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}
