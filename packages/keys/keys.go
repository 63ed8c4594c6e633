package keys

import (
	"bufio"
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
)

// keyHexLen is the length of a secp256k1 private key in hex characters.
const keyHexLen = 64

// Wallet is one account in the batch, derived from a line of the key file.
// Index is the 1-based position among the valid keys.
type Wallet struct {
	Index   int
	Key     *ecdsa.PrivateKey
	Address ethcmn.Address
}

// Load reads private keys from filepath, one per line. Blank lines and lines
// starting with '#' are ignored, an optional 0x prefix is stripped, and lines
// that are not exactly 64 hex characters afterwards are skipped. Order is
// preserved and duplicates are kept. A missing or unreadable file is logged
// and yields an empty slice.
func Load(filepath string) []string {
	f, err := os.Open(filepath)
	if err != nil {
		log.Error("failed to open key file", "path", filepath, "err", err)
		return nil
	}
	defer f.Close()

	var keys []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key := Normalize(line)
		if !validHexKey(key) {
			continue
		}
		keys = append(keys, key)
	}
	if err := scanner.Err(); err != nil {
		log.Error("failed to read key file", "path", filepath, "err", err)
		return nil
	}

	log.Info("private keys loaded", "path", filepath, "count", len(keys))
	return keys
}

// Normalize strips surrounding whitespace and an optional 0x prefix.
func Normalize(line string) string {
	key := strings.TrimSpace(line)
	key = strings.TrimPrefix(key, "0x")
	key = strings.TrimPrefix(key, "0X")
	return key
}

func validHexKey(key string) bool {
	if len(key) != keyHexLen {
		return false
	}
	_, err := hex.DecodeString(key)
	return err == nil
}

// NewWallet parses a normalized hex private key and derives its address.
func NewWallet(index int, hexKey string) (Wallet, error) {
	priv, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return Wallet{}, fmt.Errorf("failed to parse private key: %w", err)
	}
	return Wallet{
		Index:   index,
		Key:     priv,
		Address: Address(priv),
	}, nil
}

// Address converts an ECDSA private key to its Ethereum address.
func Address(priv *ecdsa.PrivateKey) ethcmn.Address {
	return crypto.PubkeyToAddress(priv.PublicKey)
}
