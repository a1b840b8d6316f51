package ecdsa

import (
	"github.com/mahdiidarabi/secp256k1-affine/pkg/secp256k1"
)

// Signer holds a private key and signs digests with RFC 6979 nonces.
// A Signer is safe for concurrent use once configured.
type Signer struct {
	key     secp256k1.Scalar
	pub     secp256k1.Point
	chainID uint64
}

// NewSigner creates a signer for key. The zero scalar is rejected.
func NewSigner(key secp256k1.Scalar) (*Signer, error) {
	if key.IsZero() {
		return nil, signatureError(ErrZeroPrivateKey, "private key is zero")
	}
	return &Signer{
		key: key,
		pub: PublicKeyFromPrivate(key),
	}, nil
}

// NewSignerFromBytes parses a 32-byte big-endian private key and creates a
// signer for it. Keys not below the group order are rejected.
func NewSignerFromBytes(b []byte) (*Signer, error) {
	if len(b) != 32 {
		return nil, signatureError(ErrPrivateKeyInvalidLen, "private key must be 32 bytes")
	}
	key, err := secp256k1.ScalarFromBytesChecked(b)
	if err != nil {
		return nil, err
	}
	return NewSigner(key)
}

// WithChainID sets the EIP-155 chain id used by V. Zero selects legacy 27/28
// recovery values.
func (s *Signer) WithChainID(chainID uint64) *Signer {
	s.chainID = chainID
	return s
}

// ChainID returns the configured chain id.
func (s *Signer) ChainID() uint64 {
	return s.chainID
}

// PublicKey returns the public key of the signer.
func (s *Signer) PublicKey() secp256k1.Point {
	return s.pub
}

// SignDigest signs a 32-byte digest.
func (s *Signer) SignDigest(digest [32]byte) (Signature, error) {
	return SignHash(s.key, digest)
}

// Verify checks sig against digest and the signer's public key.
func (s *Signer) Verify(digest [32]byte, sig Signature) bool {
	return VerifyHash(s.pub, digest, sig)
}

// V returns the recovery value to publish with sig: EIP-155 encoded when a
// chain id is set, legacy 27/28 otherwise.
func (s *Signer) V(sig Signature) uint64 {
	if s.chainID == 0 {
		return uint64(sig.VLegacy())
	}
	return sig.VEIP155(s.chainID)
}
