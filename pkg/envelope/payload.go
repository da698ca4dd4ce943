package envelope

import "encoding/xml"

// PayloadCodec converts typed binding objects to and from XML. It is the
// seam between this library and an external data-binding layer: generated
// bindings plug in here.
type PayloadCodec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// XMLCodec is the default PayloadCodec, backed by encoding/xml.
type XMLCodec struct{}

// Marshal implements PayloadCodec.
func (XMLCodec) Marshal(v any) ([]byte, error) {
	return xml.Marshal(v)
}

// Unmarshal implements PayloadCodec.
func (XMLCodec) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
