package chain

import (
	"crypto/ecdsa"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Wallet binds a signing key to a chain connection and an optional proxy.
// Immutable for the lifetime of one pipeline run.
type Wallet struct {
	Key     *ecdsa.PrivateKey
	Address common.Address
	ChainID *big.Int
	Client  Backend
	Proxy   string
}

func NewWallet(pkHex string, chainID *big.Int, client Backend, proxy string) (*Wallet, error) {
	prv, err := hexToECDSAPriv(pkHex)
	if err != nil {
		return nil, err
	}
	return &Wallet{
		Key:     prv,
		Address: gethcrypto.PubkeyToAddress(prv.PublicKey),
		ChainID: chainID,
		Client:  client,
		Proxy:   proxy,
	}, nil
}

// Parse hex ECDSA private key (with / without 0x).
func hexToECDSAPriv(s string) (*ecdsa.PrivateKey, error) {
	h := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if len(h) == 0 {
		return nil, errors.New("empty private key")
	}
	return gethcrypto.HexToECDSA(h)
}
