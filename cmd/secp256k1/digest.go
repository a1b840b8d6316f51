package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/mahdiidarabi/secp256k1-affine/pkg/ecdsa"
	"github.com/mahdiidarabi/secp256k1-affine/pkg/secp256k1"
)

// Supported message hashing schemes.
const (
	hashSHA256      = "sha256"
	hashKeccak256   = "keccak256"
	hashEthPersonal = "eth-personal"
)

// keccak256 returns the legacy Keccak-256 hash used by Ethereum.
func keccak256(data ...[]byte) [32]byte {
	var out [32]byte
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	h.Sum(out[:0])
	return out
}

// messageDigest hashes msg with the named scheme. eth-personal applies the
// "\x19Ethereum Signed Message:\n" prefix before Keccak-256.
func messageDigest(scheme string, msg []byte) ([32]byte, error) {
	switch scheme {
	case hashSHA256, "":
		return ecdsa.HashMessage(msg), nil
	case hashKeccak256:
		return keccak256(msg), nil
	case hashEthPersonal:
		prefix := "\x19Ethereum Signed Message:\n" + strconv.Itoa(len(msg))
		return keccak256([]byte(prefix), msg), nil
	default:
		return [32]byte{}, fmt.Errorf("unknown hash %q (want %s, %s or %s)",
			scheme, hashSHA256, hashKeccak256, hashEthPersonal)
	}
}

// ethereumAddress returns the EIP-55 checksummed address of pub.
func ethereumAddress(pub secp256k1.Point) string {
	raw := pub.SerializeUncompressed()
	if raw == nil {
		return ""
	}
	h := keccak256(raw[1:])
	lower := hex.EncodeToString(h[12:])

	check := keccak256([]byte(lower))
	out := []byte(lower)
	for i, c := range out {
		if c < 'a' {
			continue
		}
		nibble := check[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0xf >= 8 {
			out[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(out)
}

// decodeHex decodes a hex string with an optional 0x prefix.
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.TrimPrefix(s, "0X")
	return hex.DecodeString(s)
}

// decodeDigest decodes exactly 32 bytes of hex.
func decodeDigest(s string) ([32]byte, error) {
	var d [32]byte
	b, err := decodeHex(s)
	if err != nil {
		return d, fmt.Errorf("invalid digest: %w", err)
	}
	if len(b) != len(d) {
		return d, fmt.Errorf("invalid digest: got %d bytes, want 32", len(b))
	}
	copy(d[:], b)
	return d, nil
}
