// Copyright (c) 2025 Akretion
// SPDX-License-Identifier: MIT

/*
Package fiscalclient implements a SOAP client for Brazilian fiscal authority
web services (SEFAZ), such as electronic invoice (NF-e) status queries.

# Overview

brazil-fiscal-client builds SOAP 1.1/1.2 envelopes around typed request
payloads, transmits them over mutually-authenticated TLS using an in-memory
PKCS#12 client certificate, and maps the response back to a typed object or
a structured fault.

The WSDL-to-binding generation step and the XML data-binding layer are
external to this library: operations are described by immutable descriptors
(see pkg/binding) and payload serialization is pluggable (see
envelope.PayloadCodec).

# Package Structure

	github.com/akretion/brazil-fiscal-client/pkg/fiscal      - Fiscal client (composition layer)
	github.com/akretion/brazil-fiscal-client/pkg/binding     - Operation descriptors and endpoint resolution
	github.com/akretion/brazil-fiscal-client/pkg/envelope    - SOAP envelope codec and fault mapping
	github.com/akretion/brazil-fiscal-client/pkg/transport   - HTTPS POST with client-certificate TLS
	github.com/akretion/brazil-fiscal-client/pkg/certificate - PKCS#12 identity loading and OCSP checking
	github.com/akretion/brazil-fiscal-client/pkg/security    - Signed-payload injection helpers

# Quick Start

To query the NF-e service status in homologation:

	import (
	    "github.com/akretion/brazil-fiscal-client/pkg/binding"
	    "github.com/akretion/brazil-fiscal-client/pkg/fiscal"
	)

	client, err := fiscal.NewClient(&fiscal.Config{
	    Ambiente:       fiscal.AmbienteHomologacao,
	    UF:             fiscal.UFParana,
	    Versao:         "4.00",
	    PKCS12:         p12Bytes,
	    PKCS12Password: password,
	})
	if err != nil {
	    // bad certificate fails here, before any network attempt
	}

	svc, _ := binding.DefaultCatalog().Service("nfe")
	var ret RetConsStatServ
	err = client.Send(ctx, svc, "nfeStatusServicoNF", &consStatServ, &ret)

Every call is independent; a single client is safe for concurrent use.
*/
package fiscalclient
