// Copyright (c) 2025 Akretion
// SPDX-License-Identifier: MIT

/*
Package certificate loads TLS client identities from in-memory PKCS#12
containers (A1 e-CNPJ/e-CPF certificates) and optionally checks their
revocation status via OCSP.

Loading never touches the filesystem and fails fast: a malformed container,
a wrong password or a container without a private key and leaf certificate
is rejected at Load time, before any network attempt.

	identity, err := certificate.Load(p12Bytes, password)
	if err != nil {
	    // errors.Is(err, certificate.ErrDecode) on bad blob or password
	}

The returned Identity is immutable and is handed to the transport layer to
present during the TLS handshake.
*/
package certificate
