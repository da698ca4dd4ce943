// Copyright (c) 2025 Akretion
// SPDX-License-Identifier: MIT

/*
Package security supports requests that carry pre-signed XML fragments.

Fiscal documents (NF-e, eventos) are signed with XML-DSig before
transmission. Re-serializing a signed fragment risks breaking its
canonicalization, so the signed XML is produced once and spliced verbatim
into the serialized request: the binding object carries a placeholder
element (for example an empty <NFe/>), and InjectSigned replaces whatever
matches the placeholder pattern with the signed fragment.

VerifyFragment checks the fragment's XML-DSig references before injection,
catching fragments corrupted between signing and transmission.
*/
package security
