// Package drbg implements the HMAC-based deterministic random bit generator
// from NIST SP 800-90A without reseeding, which is the construction RFC 6979
// uses to derive ECDSA nonces.
//
// A generator is an explicit stateful object. Create one per signing
// operation; it is not safe for concurrent use.
package drbg

import (
	"crypto/hmac"
	"hash"

	"github.com/minio/sha256-simd"
)

// HmacDRBG is an HMAC_DRBG instance keyed by K with chaining value V.
type HmacDRBG struct {
	newHash func() hash.Hash
	k       []byte
	v       []byte
}

// New instantiates a generator over the given hash constructor. The seed
// material is entropy || nonce || personalization.
func New(newHash func() hash.Hash, entropy, nonce, personalization []byte) *HmacDRBG {
	size := newHash().Size()
	d := &HmacDRBG{
		newHash: newHash,
		k:       make([]byte, size),
		v:       make([]byte, size),
	}
	for i := range d.v {
		d.v[i] = 0x01
	}
	d.update(entropy, nonce, personalization)
	return d
}

// NewSHA256 instantiates a generator over HMAC-SHA256.
func NewSHA256(entropy, nonce, personalization []byte) *HmacDRBG {
	return New(sha256.New, entropy, nonce, personalization)
}

func (d *HmacDRBG) mac(key []byte, parts ...[]byte) []byte {
	h := hmac.New(d.newHash, key)
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// update runs HMAC_DRBG_Update with the concatenation of provided as the
// additional data.
func (d *HmacDRBG) update(provided ...[]byte) {
	empty := true
	for _, p := range provided {
		if len(p) > 0 {
			empty = false
			break
		}
	}

	parts := append([][]byte{d.v, {0x00}}, provided...)
	d.k = d.mac(d.k, parts...)
	d.v = d.mac(d.k, d.v)
	if empty {
		return
	}

	parts = append([][]byte{d.v, {0x01}}, provided...)
	d.k = d.mac(d.k, parts...)
	d.v = d.mac(d.k, d.v)
}

// Generate fills out with the next len(out) bytes of the stream and then
// advances the internal state so the next call yields fresh output.
func (d *HmacDRBG) Generate(out []byte) {
	for n := 0; n < len(out); {
		d.v = d.mac(d.k, d.v)
		n += copy(out[n:], d.v)
	}
	d.update()
}

// Read implements io.Reader. It never fails.
func (d *HmacDRBG) Read(p []byte) (int, error) {
	d.Generate(p)
	return len(p), nil
}
