// Package keys holds the signing side of the registered signature schemes:
// key generation, signing, and deterministic per-member seed derivation.
//
// Credentials only ever carry the public half. Nothing in this package
// persists key material.
package keys
