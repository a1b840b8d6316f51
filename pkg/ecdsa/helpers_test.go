package ecdsa

import (
	"encoding/hex"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/mahdiidarabi/secp256k1-affine/pkg/secp256k1"
)

// hexDecodeT decodes a hex string, handling 0x prefix, and fails the test on
// malformed input.
func hexDecodeT(t testing.TB, s string) []byte {
	t.Helper()
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func scalarFromHex(t testing.TB, s string) secp256k1.Scalar {
	t.Helper()
	return secp256k1.ScalarFromBytes(hexDecodeT(t, s))
}

func digestFromHex(t testing.TB, s string) [32]byte {
	t.Helper()
	b := hexDecodeT(t, s)
	if len(b) != 32 {
		t.Fatalf("digest %q is %d bytes, want 32", s, len(b))
	}
	var d [32]byte
	copy(d[:], b)
	return d
}

func drawDigest(t *rapid.T, label string) [32]byte {
	var d [32]byte
	copy(d[:], rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, label))
	return d
}

func drawPrivateKey(t *rapid.T, label string) secp256k1.Scalar {
	b := rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, label)
	d := secp256k1.ScalarFromBytes(b)
	if d.IsZero() {
		t.Skip("zero private key")
	}
	return d
}

// newTestRecords signs count messages with key and returns the records.
func newTestRecords(t *testing.T, key uint64, count int) []*Record {
	t.Helper()
	signer, err := NewSigner(secp256k1.ScalarFromUint64(key))
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}

	records := make([]*Record, count)
	for i := range records {
		digest := HashMessage([]byte{byte(i), 'm', 's', 'g'})
		sig, err := signer.SignDigest(digest)
		if err != nil {
			t.Fatalf("SignDigest #%d: %v", i, err)
		}
		records[i] = &Record{Digest: digest, Signature: sig, PublicKey: signer.PublicKey()}
	}
	return records
}
