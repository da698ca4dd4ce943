// Copyright (c) 2025 Akretion
// SPDX-License-Identifier: MIT

/*
Package transport performs the HTTPS POST carrying a SOAP envelope to a
fiscal authority endpoint.

The client presents a PKCS#12-derived identity (pkg/certificate) during the
TLS handshake when one is configured; without it the connection is
server-authenticated only, which some homologation servers accept.

One call, one attempt: the transport never retries. Retry policy belongs to
the caller, who knows whether the request is idempotent.

All failures are reported as *Error. A StatusCode of zero means the request
never completed (DNS, connection or TLS handshake failure); a non-zero
StatusCode carries the HTTP status and the response body, which may still
contain a SOAP fault for the envelope layer to inspect.
*/
package transport
