package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/secp256k1-affine/pkg/ecdsa"
	"github.com/mahdiidarabi/secp256k1-affine/pkg/secp256k1"
)

const (
	testKey     = "0000000000000000000000000000000000000000000000000000000000003039"
	testPubKey  = "03f01d6b9018ab421dd410404cb869072065522bf85734008f105cf385a023a80f"
	testDigest  = "abababababababababababababababababababababababababababababababab"
	testR       = "0771619e3d42c6b913f0aa8a4888679526a375a65a6a4e524a1fc433d03cc14a"
	testS       = "7b8c27479e2095e27b1590e532e1343ff7d1f9a2e856cf7fd33b54b35704c093"
	testSigRSV  = testR + testS + "01"
	testAddress = "0xEB4665750b1382DF4AeBF49E04B429AAAc4d9929"
)

// runApp runs the tool with args and returns what it wrote to stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"secp256k1"}, args...))
	return stdout.String(), err
}

// outputField returns the value printed after "name:".
func outputField(t *testing.T, out, name string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, name+":"); ok {
			return strings.TrimSpace(v)
		}
	}
	t.Fatalf("field %q not found in output:\n%s", name, out)
	return ""
}

func TestPubkeyCommand(t *testing.T) {
	out, err := runApp(t, "pubkey", "--key", "0x"+testKey)
	require.NoError(t, err)

	assert.Equal(t, testPubKey, outputField(t, out, "compressed"))
	assert.Equal(t, testAddress, outputField(t, out, "address"))

	uncompressed := outputField(t, out, "uncompressed")
	assert.Len(t, uncompressed, 130)
	assert.True(t, strings.HasPrefix(uncompressed, "04f01d6b9018ab421dd410404cb869072065522bf85734008f105cf385a023a80f"))
}

func TestPubkeyCommand_InvalidKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		kind error
	}{
		{name: "zero", key: strings.Repeat("00", 32), kind: ecdsa.ErrZeroPrivateKey},
		{name: "short", key: "0102", kind: ecdsa.ErrPrivateKeyInvalidLen},
		{name: "order", key: "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", kind: secp256k1.ErrScalarOverflow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runApp(t, "pubkey", "--key", tc.key)
			require.ErrorIs(t, err, tc.kind)
		})
	}

	_, err := runApp(t, "pubkey")
	assert.ErrorContains(t, err, "key")
}

func TestSignCommand(t *testing.T) {
	out, err := runApp(t, "sign", "--key", testKey, "--digest", testDigest)
	require.NoError(t, err)

	assert.Equal(t, testR, outputField(t, out, "r"))
	assert.Equal(t, testS, outputField(t, out, "s"))
	assert.Equal(t, "28", outputField(t, out, "v"))
	assert.Equal(t, testSigRSV, outputField(t, out, "signature"))

	out, err = runApp(t, "--chain-id", "1", "sign", "--key", testKey, "--digest", testDigest)
	require.NoError(t, err)
	assert.Equal(t, "38", outputField(t, out, "v"))
	assert.Equal(t, testSigRSV, outputField(t, out, "signature"))
}

func TestSignCommand_InputErrors(t *testing.T) {
	_, err := runApp(t, "sign", "--key", testKey)
	assert.ErrorContains(t, err, "one of --digest or --message is required")

	_, err = runApp(t, "sign", "--key", testKey, "--digest", testDigest, "--message", "hi")
	assert.ErrorContains(t, err, "mutually exclusive")

	_, err = runApp(t, "sign", "--key", testKey, "--digest", "abab")
	assert.ErrorContains(t, err, "invalid digest")

	_, err = runApp(t, "--hash", "md5", "sign", "--key", testKey, "--message", "hi")
	assert.ErrorContains(t, err, "unknown hash")
}

func TestVerifyCommand(t *testing.T) {
	out, err := runApp(t, "verify", "--pubkey", testPubKey, "--digest", testDigest, "--signature", testSigRSV)
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	// Legacy recovery values are accepted.
	out, err = runApp(t, "verify", "--pubkey", testPubKey, "--digest", testDigest, "--signature", testR+testS+"1c")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	tampered := testR + strings.Repeat("1", 64) + "01"
	out, err = runApp(t, "verify", "--pubkey", testPubKey, "--digest", testDigest, "--signature", tampered)
	require.ErrorIs(t, err, errInvalidSignature)
	assert.Equal(t, "invalid\n", out)

	_, err = runApp(t, "verify", "--pubkey", "05", "--digest", testDigest, "--signature", testSigRSV)
	require.ErrorIs(t, err, secp256k1.ErrPubKeyInvalidLen)

	_, err = runApp(t, "verify", "--pubkey", testPubKey, "--digest", testDigest, "--signature", testR+testS+"05")
	require.ErrorIs(t, err, ecdsa.ErrSigInvalidRecoveryID)

	_, err = runApp(t, "verify", "--digest", testDigest, "--signature", testSigRSV)
	assert.ErrorContains(t, err, "--pubkey is required")
}

func TestSignVerifyRoundTrip(t *testing.T) {
	for _, scheme := range []string{hashSHA256, hashKeccak256, hashEthPersonal} {
		t.Run(scheme, func(t *testing.T) {
			out, err := runApp(t, "--hash", scheme, "sign", "--key", testKey, "--message", "hello world")
			require.NoError(t, err)

			want, err := messageDigest(scheme, []byte("hello world"))
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("%x", want), outputField(t, out, "digest"))

			sig := outputField(t, out, "signature")
			out, err = runApp(t, "--hash", scheme, "verify", "--pubkey", testPubKey, "--message", "hello world", "--signature", sig)
			require.NoError(t, err)
			assert.Equal(t, "valid\n", out)

			_, err = runApp(t, "--hash", scheme, "verify", "--pubkey", testPubKey, "--message", "hello there", "--signature", sig)
			require.ErrorIs(t, err, errInvalidSignature)
		})
	}
}

func writeRecords(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func signMessages(t *testing.T, msgs ...string) []ecdsa.Signature {
	t.Helper()
	signer, err := ecdsa.NewSigner(secp256k1.ScalarFromUint64(12345))
	require.NoError(t, err)

	sigs := make([]ecdsa.Signature, len(msgs))
	for i, m := range msgs {
		sigs[i], err = signer.SignDigest(ecdsa.HashMessage([]byte(m)))
		require.NoError(t, err)
	}
	return sigs
}

func TestVerifyBatchCommand_JSON(t *testing.T) {
	sigs := signMessages(t, "a", "b", "c")

	var items []string
	for i, m := range []string{"a", "b", "c"} {
		items = append(items, fmt.Sprintf(`{"message": %q, "r": "0x%s", "s": "0x%s", "v": %d, "public_key": %q}`,
			m, sigs[i].R, sigs[i].S, sigs[i].VLegacy(), testPubKey))
	}
	path := writeRecords(t, "records.json", "["+strings.Join(items, ",\n")+"]")

	out, err := runApp(t, "verify-batch", "--file", path, "--workers", "2")
	require.NoError(t, err)
	assert.Equal(t, "3", outputField(t, out, "total"))
	assert.Equal(t, "3", outputField(t, out, "valid"))

	// Message "b" with the signature of "c".
	items[1] = fmt.Sprintf(`{"message": "b", "r": "0x%s", "s": "0x%s", "public_key": %q}`, sigs[2].R, sigs[2].S, testPubKey)
	path = writeRecords(t, "records.json", "["+strings.Join(items, ",\n")+"]")

	out, err = runApp(t, "verify-batch", "--file", path)
	require.ErrorContains(t, err, "1 of 3 records failed verification")
	assert.Equal(t, "2", outputField(t, out, "valid"))
	assert.Equal(t, "[1]", outputField(t, out, "invalid"))
}

func TestVerifyBatchCommand_CSV(t *testing.T) {
	sigs := signMessages(t, "x", "y")
	content := "message,r,s,v\n" +
		fmt.Sprintf("x,0x%s,0x%s,%d\n", sigs[0].R, sigs[0].S, sigs[0].V) +
		fmt.Sprintf("y,0x%s,0x%s,%d\n", sigs[1].R, sigs[1].S, sigs[1].V)

	// The format follows the extension unless --format is given.
	out, err := runApp(t, "verify-batch", "--file", writeRecords(t, "records.csv", content), "--pubkey", testPubKey)
	require.NoError(t, err)
	assert.Equal(t, "2", outputField(t, out, "valid"))

	out, err = runApp(t, "verify-batch", "--file", writeRecords(t, "records.txt", content), "--format", "csv", "--pubkey", testPubKey)
	require.NoError(t, err)
	assert.Equal(t, "2", outputField(t, out, "valid"))

	_, err = runApp(t, "verify-batch", "--file", writeRecords(t, "records.csv", content))
	assert.ErrorContains(t, err, "missing public_key")
}

func TestDumpConfigCommand(t *testing.T) {
	out, err := runApp(t, "--chain-id", "5", "--hash", "keccak256", "dumpconfig")
	require.NoError(t, err)

	var config Config
	_, err = toml.Decode(out, &config)
	require.NoError(t, err)

	want := defaultConfig()
	want.ChainID = 5
	want.Hash = hashKeccak256
	assert.Equal(t, want, config)
}
