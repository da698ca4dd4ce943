package envelope

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Fault is a well-formed SOAP fault reported by the remote service. It is a
// terminal outcome for the call: the server understood the request and
// rejected it at the application level.
type Fault struct {
	Code   string
	Reason string
	Detail string
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("SOAP fault %s: %s", f.Code, f.Reason)
}

// parseFault reads both the SOAP 1.1 (faultcode/faultstring) and SOAP 1.2
// (Code/Value, Reason/Text) fault layouts.
func parseFault(el *etree.Element) *Fault {
	fault := &Fault{}

	if code := childElement(el, "faultcode"); code != nil {
		fault.Code = strings.TrimSpace(code.Text())
	} else if code := childElement(el, "Code"); code != nil {
		if value := childElement(code, "Value"); value != nil {
			fault.Code = strings.TrimSpace(value.Text())
		}
	}

	if reason := childElement(el, "faultstring"); reason != nil {
		fault.Reason = strings.TrimSpace(reason.Text())
	} else if reason := childElement(el, "Reason"); reason != nil {
		if text := childElement(reason, "Text"); text != nil {
			fault.Reason = strings.TrimSpace(text.Text())
		}
	}

	if detail := childElement(el, "detail"); detail != nil {
		fault.Detail = strings.TrimSpace(detail.Text())
	} else if detail := childElement(el, "Detail"); detail != nil {
		fault.Detail = strings.TrimSpace(detail.Text())
	}

	return fault
}
