package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer 持有签名私钥，代表唯一的本地账户
type Signer struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
	chainID    *big.Int
}

// NewSigner 解析私钥；私钥为空时返回 nil，客户端以只读方式运行
func NewSigner(privateKeyHex string, chainID int64) (*Signer, error) {
	if privateKeyHex == "" {
		return nil, nil
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &Signer{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		chainID:    big.NewInt(chainID),
	}, nil
}

// Address 账户地址，未配置私钥时为空串
func (s *Signer) Address() string {
	if s == nil {
		return ""
	}
	return s.address.Hex()
}

// Manages 是否为本签名器管理的账户
func (s *Signer) Manages(account string) bool {
	if s == nil || !common.IsHexAddress(account) {
		return false
	}
	return common.HexToAddress(account) == s.address
}

// TransactOpts 为指定账户生成交易授权，value 为随交易发送的 wei
func (s *Signer) TransactOpts(ctx context.Context, account string, value *big.Int) (*bind.TransactOpts, error) {
	if s == nil {
		return nil, fmt.Errorf("no signing key configured")
	}
	if !s.Manages(account) {
		return nil, fmt.Errorf("account %s is not managed by this client", account)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(s.privateKey, s.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	opts.Value = value
	return opts, nil
}
