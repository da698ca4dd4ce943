// Copyright (c) 2025 Akretion
// SPDX-License-Identifier: MIT

/*
Package binding describes SOAP operations derived from fiscal authority WSDLs.

An Operation is an immutable descriptor for one SOAP operation: its
SOAPAction, payload namespace, binding shape and endpoint path. A Service
groups the operations of one fiscal service (nfe, cte, mdfe, bpe) together
with its endpoint table, keyed by environment and IBGE region code.

Descriptors are produced outside this library, normally by a WSDL-to-binding
generation step. A default catalog for the NF-e 4.00 web services is embedded
and available through DefaultCatalog; callers with their own tables can use
LoadCatalog instead.

# Resolution

Service.Resolve selects the endpoint for a region/environment pair and
surfaces the operation's binding shape unchanged:

	svc, err := binding.DefaultCatalog().Service("nfe")
	res, err := svc.Resolve("nfeStatusServicoNF", "41", "2")
	// res.URL, res.Operation.Shape, res.Operation.Action

Unknown region/environment combinations fail with ErrEndpointNotFound rather
than defaulting silently.
*/
package binding
