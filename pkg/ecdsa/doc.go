// Package ecdsa implements ECDSA signing and verification over secp256k1 with
// RFC 6979 deterministic nonces, low-s normalization and Ethereum style
// recovery values.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/secp256k1-affine/pkg/ecdsa"
//
//	signer, err := ecdsa.NewSigner(secp256k1.ScalarFromUint64(12345))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	digest := ecdsa.HashMessage([]byte("hello"))
//	sig, err := signer.SignDigest(digest)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ok := ecdsa.VerifyHash(signer.PublicKey(), digest, sig)
//	fmt.Printf("valid: %v, v: %d\n", ok, signer.WithChainID(1).V(sig))
//
// # Explicit nonces
//
// Sign takes the nonce from the caller. It never retries, so a degenerate
// nonce is reported as an error:
//
//	sig, err := ecdsa.Sign(priv, ecdsa.DigestToScalar(digest), k)
//	if errors.Is(err, ecdsa.ErrRIsZero) {
//	    // pick another k
//	}
//
// # Batch verification
//
// Records can be loaded from JSON or CSV and verified in parallel:
//
//	parser := &ecdsa.JSONParser{}
//	records, err := parser.ParseRecords("signatures.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := ecdsa.NewBatchVerifier().
//	    WithConfig(ecdsa.BatchConfig{NumWorkers: 8}).
//	    Verify(ctx, records)
package ecdsa
