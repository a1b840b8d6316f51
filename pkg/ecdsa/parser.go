package ecdsa

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/holiman/uint256"
	"github.com/minio/sha256-simd"

	"github.com/mahdiidarabi/secp256k1-affine/pkg/secp256k1"
)

// Record is one digest, signature and public key triple to be verified.
type Record struct {
	Digest    [32]byte
	Signature Signature
	PublicKey secp256k1.Point
}

// Verify reports whether the record's signature is valid.
func (r *Record) Verify() bool {
	return VerifyHash(r.PublicKey, r.Digest, r.Signature)
}

// RecordParser defines the interface for loading records from a source.
type RecordParser interface {
	// ParseRecords parses records from a source and returns them.
	ParseRecords(source string) ([]*Record, error)
}

// HashMessage returns the SHA-256 digest of message.
func HashMessage(message []byte) [32]byte {
	return sha256.Sum256(message)
}

// FieldNames maps record fields to JSON keys or CSV columns. Empty names
// fall back to the defaults.
type FieldNames struct {
	Digest    string // default: "digest"
	Message   string // default: "message", hashed with SHA-256 when no digest is given
	R         string // default: "r"
	S         string // default: "s"
	V         string // default: "v", optional
	PublicKey string // default: "public_key", SEC 1 hex
}

// DefaultFieldNames returns the default field names.
func DefaultFieldNames() FieldNames {
	return FieldNames{
		Digest:    "digest",
		Message:   "message",
		R:         "r",
		S:         "s",
		V:         "v",
		PublicKey: "public_key",
	}
}

func (f FieldNames) withDefaults() FieldNames {
	d := DefaultFieldNames()
	if f.Digest == "" {
		f.Digest = d.Digest
	}
	if f.Message == "" {
		f.Message = d.Message
	}
	if f.R == "" {
		f.R = d.R
	}
	if f.S == "" {
		f.S = d.S
	}
	if f.V == "" {
		f.V = d.V
	}
	if f.PublicKey == "" {
		f.PublicKey = d.PublicKey
	}
	return f
}

// JSONParser parses records from a JSON array of objects.
type JSONParser struct {
	Fields FieldNames

	// DefaultPublicKey is used for records without a public key field.
	DefaultPublicKey secp256k1.Point
}

// ParseRecords parses records from a JSON file.
//
// Expected format:
//
//	[
//	  {"message": "...", "r": "0x...", "s": "0x...", "v": 27, "public_key": "02..."},
//	  {"digest": "0x...", "r": "...", "s": "..."}
//	]
func (p *JSONParser) ParseRecords(jsonFile string) ([]*Record, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	return p.Decode(file)
}

// Decode parses records from r.
func (p *JSONParser) Decode(r io.Reader) ([]*Record, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	fields := p.Fields.withDefaults()
	records := make([]*Record, 0, len(items))
	for i, item := range items {
		rec, err := buildRecord(item, fields, p.DefaultPublicKey)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// CSVParser parses records from a CSV file with a header row.
type CSVParser struct {
	Fields FieldNames

	// DefaultPublicKey is used when the file has no public key column.
	DefaultPublicKey secp256k1.Point
}

// ParseRecords parses records from a CSV file.
func (p *CSVParser) ParseRecords(csvFile string) ([]*Record, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Decode(file)
}

// Decode parses records from r.
func (p *CSVParser) Decode(r io.Reader) ([]*Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	fields := p.Fields.withDefaults()
	var hasR, hasS bool
	for _, col := range header {
		hasR = hasR || col == fields.R
		hasS = hasS || col == fields.S
	}
	if !hasR || !hasS {
		return nil, fmt.Errorf("missing required columns: %s or %s", fields.R, fields.S)
	}

	records := make([]*Record, 0)
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		item := make(map[string]interface{}, len(header))
		for i, col := range header {
			if i < len(row) && row[i] != "" {
				item[col] = row[i]
			}
		}

		rec, err := buildRecord(item, fields, p.DefaultPublicKey)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// buildRecord turns one decoded JSON object or CSV row into a Record.
func buildRecord(item map[string]interface{}, fields FieldNames, defaultPub secp256k1.Point) (*Record, error) {
	rec := &Record{}

	// Digest, or SHA-256 of the message
	if dVal, ok := item[fields.Digest]; ok {
		d, err := parseUint256(dVal)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", fields.Digest, err)
		}
		rec.Digest = d.Bytes32()
	} else if msgVal, ok := item[fields.Message]; ok {
		msg, ok := msgVal.(string)
		if !ok {
			return nil, errors.New("message field must be a string")
		}
		rec.Digest = HashMessage([]byte(msg))
	} else {
		return nil, fmt.Errorf("missing %s or %s field", fields.Message, fields.Digest)
	}

	r, err := requiredUint256(item, fields.R)
	if err != nil {
		return nil, err
	}
	if !isBelowOrder(r) {
		return nil, signatureError(ErrSigRTooBig, "invalid signature: R >= group order")
	}
	s, err := requiredUint256(item, fields.S)
	if err != nil {
		return nil, err
	}
	if !isBelowOrder(s) {
		return nil, signatureError(ErrSigSTooBig, "invalid signature: S >= group order")
	}

	var v uint8
	if vVal, ok := item[fields.V]; ok {
		raw, err := parseUint256(vVal)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", fields.V, err)
		}
		if !raw.IsUint64() {
			return nil, signatureError(ErrSigInvalidRecoveryID, "invalid signature: recovery id out of range")
		}
		if v, err = normalizeV(raw.Uint64()); err != nil {
			return nil, err
		}
	}
	rec.Signature = NewSignature(secp256k1.NewScalar(r), secp256k1.NewScalar(s), v)

	if pVal, ok := item[fields.PublicKey]; ok {
		str, ok := pVal.(string)
		if !ok {
			return nil, fmt.Errorf("%s field must be a hex string", fields.PublicKey)
		}
		raw, err := hexDecode(str)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", fields.PublicKey, err)
		}
		pub, err := secp256k1.ParsePoint(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", fields.PublicKey, err)
		}
		rec.PublicKey = pub
	} else if !defaultPub.IsInfinity() {
		rec.PublicKey = defaultPub
	} else {
		return nil, fmt.Errorf("missing %s field", fields.PublicKey)
	}

	return rec, nil
}

func requiredUint256(item map[string]interface{}, field string) (*uint256.Int, error) {
	val, ok := item[field]
	if !ok {
		return nil, fmt.Errorf("missing %s field", field)
	}
	x, err := parseUint256(val)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", field, err)
	}
	return x, nil
}

func isBelowOrder(x *uint256.Int) bool {
	n := secp256k1.N()
	return x.Lt(&n)
}

// hexDecode decodes a hex string, handling 0x prefix
func hexDecode(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return hex.DecodeString(s)
}

// parseUint256 parses a 256-bit integer from a string or a JSON number.
// Strings with a 0x prefix or any hex letter are read as hex, all other
// strings as decimal.
func parseUint256(val interface{}) (*uint256.Int, error) {
	var z *big.Int
	switch v := val.(type) {
	case string:
		s := strings.TrimPrefix(v, "0x")
		s = strings.TrimPrefix(s, "0X")
		base := 10
		if s != v || strings.ContainsAny(s, "abcdefABCDEF") {
			base = 16
		}
		var ok bool
		if z, ok = new(big.Int).SetString(s, base); !ok {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}

	case json.Number:
		var ok bool
		if z, ok = new(big.Int).SetString(string(v), 10); !ok {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}

	default:
		return nil, fmt.Errorf("unsupported type: %T", val)
	}

	if z.Sign() < 0 {
		return nil, fmt.Errorf("negative number: %s", z)
	}
	x, overflow := uint256.FromBig(z)
	if overflow {
		return nil, fmt.Errorf("number does not fit in 256 bits: %s", z)
	}
	return x, nil
}
