package main

import (
	"github.com/urfave/cli/v2"
)

const envPrefix = "SECP256K1_"

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "TOML configuration file",
		EnvVars: []string{envPrefix + "CONFIG"},
	}
	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (trace, debug, info, warn, error)",
		Value:   "info",
		EnvVars: []string{envPrefix + "LOG_LEVEL"},
	}
	chainIDFlag = &cli.Uint64Flag{
		Name:    "chain-id",
		Usage:   "EIP-155 chain id for the reported v (0 = legacy 27/28)",
		EnvVars: []string{envPrefix + "CHAIN_ID"},
	}
	hashFlag = &cli.StringFlag{
		Name:    "hash",
		Usage:   "Message hash used with --message (sha256, keccak256, eth-personal)",
		Value:   hashSHA256,
		EnvVars: []string{envPrefix + "HASH"},
	}

	keyFlag = &cli.StringFlag{
		Name:     "key",
		Usage:    "Private key as 32 bytes of hex",
		EnvVars:  []string{envPrefix + "KEY"},
		Required: true,
	}
	pubKeyFlag = &cli.StringFlag{
		Name:  "pubkey",
		Usage: "SEC 1 public key in hex (compressed, uncompressed or hybrid)",
	}
	digestFlag = &cli.StringFlag{
		Name:  "digest",
		Usage: "32-byte message digest in hex",
	}
	messageFlag = &cli.StringFlag{
		Name:  "message",
		Usage: "Message text, hashed with --hash",
	}
	signatureFlag = &cli.StringFlag{
		Name:     "signature",
		Usage:    "65-byte R || S || V signature in hex",
		Required: true,
	}

	fileFlag = &cli.StringFlag{
		Name:     "file",
		Usage:    "Path to records file (JSON or CSV)",
		Required: true,
	}
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Usage:   "Records file format (json or csv, default from file extension)",
		EnvVars: []string{envPrefix + "BATCH_FORMAT"},
	}
	workersFlag = &cli.IntFlag{
		Name:    "workers",
		Usage:   "Number of parallel workers (0 = auto-detect based on CPU cores)",
		EnvVars: []string{envPrefix + "BATCH_WORKERS"},
	}
	stopOnFailureFlag = &cli.BoolFlag{
		Name:  "stop-on-failure",
		Usage: "Stop at the first invalid record",
	}
)
