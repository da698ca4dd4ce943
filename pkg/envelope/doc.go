// Copyright (c) 2025 Akretion
// SPDX-License-Identifier: MIT

/*
Package envelope wraps typed payloads into SOAP envelopes and maps SOAP
responses back to typed objects or faults.

The codec supports the two body shapes observed across the fiscal WSDLs:
bare, where the serialized payload is the sole body child, and wrapped,
where the payload is nested inside an operation-named wrapper element such
as nfeDadosMsg. The shape is a property of the operation descriptor
(binding.Operation) and is never guessed from the response: a wrapped
operation whose response lacks the wrapper fails with ErrMissingWrapper.

Payload serialization is delegated to the PayloadCodec capability. The
default implementation uses encoding/xml; callers with generated bindings
can supply their own.

Responses whose body starts with a Fault element are returned as a *Fault
error carrying the fault code and reason; both SOAP 1.1 and SOAP 1.2 fault
layouts are recognized. Element matching is by local name, so a server
answering a SOAP 1.1 request with a SOAP 1.2 envelope (the Paraná
authorizer does this) still parses.
*/
package envelope
