// Copyright (c) 2025 Akretion
// SPDX-License-Identifier: MIT

/*
Package fiscal is the composition layer: one client per certificate,
environment and state, driving endpoint resolution, envelope construction,
transport and response mapping for a single request/response cycle.

	client, err := fiscal.NewClient(&fiscal.Config{
	    Ambiente:       fiscal.AmbienteHomologacao,
	    UF:             fiscal.UFParana,
	    Versao:         "4.00",
	    PKCS12:         p12Bytes,
	    PKCS12Password: password,
	})

A bad certificate or password fails in NewClient, before any network
attempt. The client holds only immutable state after construction and is
safe for concurrent Send calls; every call is independent.

Send fails with the first error in the pipeline, and each error keeps its
originating kind: certificate.Err*, binding.ErrEndpointNotFound,
*transport.Error, envelope.Err* or *envelope.Fault. Callers can therefore
tell "my request never arrived" from "the authority understood and refused".
The client never retries; retry policy on transport errors belongs to the
caller.
*/
package fiscal
