// Package ecc implements the elliptic-curve primitives used by
// confidential transactions over secp256k1: scalars and points with
// canonical serialization, a SHA-256 transcript hasher, a Fiat-Shamir
// oracle, deterministic nonce derivation (RFC 6979), precomputed
// generator tables with a blinded variant, a dual-mode multi-scalar
// multiplication engine, Pedersen commitments, Schnorr signatures with
// multi-party co-signing, and a public (revealed-value) range proof.
//
// All field and group arithmetic is delegated to
// github.com/decred/dcrd/dcrec/secp256k1/v4. This package layers the
// protocol semantics on top: canonical encodings, deterministic context
// derivation, and the commitment/signature/proof flows.
//
// Operations that handle secret material run in constant-time secure
// mode by default. Verification paths opt into the faster variable-time
// mode explicitly; see Mode.
package ecc
