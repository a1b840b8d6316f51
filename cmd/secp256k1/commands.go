package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/mahdiidarabi/secp256k1-affine/pkg/ecdsa"
	"github.com/mahdiidarabi/secp256k1-affine/pkg/secp256k1"
)

var errInvalidSignature = errors.New("signature is invalid")

var (
	pubkeyCommand = &cli.Command{
		Name:   "pubkey",
		Usage:  "Derive the public key and Ethereum address of a private key",
		Flags:  []cli.Flag{keyFlag},
		Action: pubkeyAction,
	}
	signCommand = &cli.Command{
		Name:   "sign",
		Usage:  "Sign a digest or message with an RFC 6979 nonce",
		Flags:  []cli.Flag{keyFlag, digestFlag, messageFlag},
		Action: signAction,
	}
	verifyCommand = &cli.Command{
		Name:   "verify",
		Usage:  "Verify a signature against a public key",
		Flags:  []cli.Flag{pubKeyFlag, digestFlag, messageFlag, signatureFlag},
		Action: verifyAction,
	}
	verifyBatchCommand = &cli.Command{
		Name:   "verify-batch",
		Usage:  "Verify every record of a JSON or CSV file in parallel",
		Flags:  []cli.Flag{fileFlag, formatFlag, workersFlag, stopOnFailureFlag, pubKeyFlag},
		Action: verifyBatchAction,
	}
	dumpConfigCommand = &cli.Command{
		Name:   "dumpconfig",
		Usage:  "Print the effective configuration as TOML",
		Action: dumpConfigAction,
	}
)

func loadSigner(ctx *cli.Context, cfg *Config) (*ecdsa.Signer, error) {
	raw, err := decodeHex(ctx.String(keyFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	signer, err := ecdsa.NewSignerFromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return signer.WithChainID(cfg.ChainID), nil
}

func loadPublicKey(s string) (secp256k1.Point, error) {
	raw, err := decodeHex(s)
	if err != nil {
		return secp256k1.Point{}, fmt.Errorf("invalid public key: %w", err)
	}
	pub, err := secp256k1.ParsePoint(raw)
	if err != nil {
		return secp256k1.Point{}, fmt.Errorf("invalid public key: %w", err)
	}
	return pub, nil
}

// inputDigest reads --digest, or hashes --message with the configured scheme.
func inputDigest(ctx *cli.Context, cfg *Config) ([32]byte, error) {
	digest, message := ctx.String(digestFlag.Name), ctx.String(messageFlag.Name)
	switch {
	case digest != "" && ctx.IsSet(messageFlag.Name):
		return [32]byte{}, errors.New("--digest and --message are mutually exclusive")
	case digest != "":
		return decodeDigest(digest)
	case ctx.IsSet(messageFlag.Name):
		return messageDigest(cfg.Hash, []byte(message))
	default:
		return [32]byte{}, errors.New("one of --digest or --message is required")
	}
}

func pubkeyAction(ctx *cli.Context) error {
	cfg, err := getConfig(ctx)
	if err != nil {
		return err
	}
	signer, err := loadSigner(ctx, cfg)
	if err != nil {
		return err
	}

	pub := signer.PublicKey()
	w := ctx.App.Writer
	fmt.Fprintf(w, "compressed:   %x\n", pub.SerializeCompressed())
	fmt.Fprintf(w, "uncompressed: %x\n", pub.SerializeUncompressed())
	fmt.Fprintf(w, "address:      %s\n", ethereumAddress(pub))
	return nil
}

func signAction(ctx *cli.Context) error {
	cfg, err := getConfig(ctx)
	if err != nil {
		return err
	}
	signer, err := loadSigner(ctx, cfg)
	if err != nil {
		return err
	}
	digest, err := inputDigest(ctx, cfg)
	if err != nil {
		return err
	}

	sig, err := signer.SignDigest(digest)
	if err != nil {
		logrus.WithError(err).Error("Signing failed")
		return err
	}
	logrus.WithField("digest", hex.EncodeToString(digest[:])).Debug("Signed digest")

	b := sig.Bytes()
	w := ctx.App.Writer
	fmt.Fprintf(w, "digest:    %x\n", digest)
	fmt.Fprintf(w, "r:         %s\n", sig.R)
	fmt.Fprintf(w, "s:         %s\n", sig.S)
	fmt.Fprintf(w, "v:         %d\n", signer.V(sig))
	fmt.Fprintf(w, "signature: %x\n", b[:])
	return nil
}

func verifyAction(ctx *cli.Context) error {
	cfg, err := getConfig(ctx)
	if err != nil {
		return err
	}
	if !ctx.IsSet(pubKeyFlag.Name) {
		return errors.New("--pubkey is required")
	}
	pub, err := loadPublicKey(ctx.String(pubKeyFlag.Name))
	if err != nil {
		return err
	}
	digest, err := inputDigest(ctx, cfg)
	if err != nil {
		return err
	}
	raw, err := decodeHex(ctx.String(signatureFlag.Name))
	if err != nil {
		return fmt.Errorf("invalid signature: %w", err)
	}
	sig, err := ecdsa.ParseSignature(raw)
	if err != nil {
		return err
	}

	if !ecdsa.VerifyHash(pub, digest, sig) {
		logrus.WithField("digest", hex.EncodeToString(digest[:])).Warn("Signature verification failed")
		fmt.Fprintln(ctx.App.Writer, "invalid")
		return errInvalidSignature
	}
	fmt.Fprintln(ctx.App.Writer, "valid")
	return nil
}

// recordFormat picks the records format from the configuration or the file
// extension.
func recordFormat(cfg *Config, path string) string {
	if cfg.Batch.Format != "" {
		return cfg.Batch.Format
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return "csv"
	}
	return "json"
}

func verifyBatchAction(ctx *cli.Context) error {
	cfg, err := getConfig(ctx)
	if err != nil {
		return err
	}

	var defaultPub secp256k1.Point
	if ctx.IsSet(pubKeyFlag.Name) {
		if defaultPub, err = loadPublicKey(ctx.String(pubKeyFlag.Name)); err != nil {
			return err
		}
	}

	path := ctx.String(fileFlag.Name)
	var parser ecdsa.RecordParser
	if recordFormat(cfg, path) == "csv" {
		parser = &ecdsa.CSVParser{DefaultPublicKey: defaultPub}
	} else {
		parser = &ecdsa.JSONParser{DefaultPublicKey: defaultPub}
	}

	records, err := parser.ParseRecords(path)
	if err != nil {
		return err
	}

	verifier := ecdsa.NewBatchVerifier().WithConfig(ecdsa.BatchConfig{
		NumWorkers:         cfg.Batch.Workers,
		StopOnFirstFailure: cfg.Batch.StopOnFailure,
	})
	result, err := verifier.Verify(ctx.Context, records)
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	fmt.Fprintf(w, "total:   %d\n", result.Total)
	fmt.Fprintf(w, "checked: %d\n", result.Checked)
	fmt.Fprintf(w, "valid:   %d\n", result.Valid)
	if len(result.Invalid) > 0 {
		fmt.Fprintf(w, "invalid: %v\n", result.Invalid)
	}
	if !result.AllValid() {
		return fmt.Errorf("%d of %d records failed verification", len(result.Invalid), result.Total)
	}
	return nil
}

func dumpConfigAction(ctx *cli.Context) error {
	cfg, err := getConfig(ctx)
	if err != nil {
		return err
	}
	return toml.NewEncoder(ctx.App.Writer).Encode(cfg)
}
