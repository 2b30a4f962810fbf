package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Block 区块与日志查询工具类
type Block struct {
	backend Backend
}

// NewBlock 创建区块工具类实例
func NewBlock(backend Backend) *Block {
	return &Block{backend: backend}
}

// Backend 链后端，ethclient.Client 实现该接口
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BlockNumber(ctx context.Context) (uint64, error)
}

// GetLogs 查询区块区间内的合约日志；toBlock 为 nil 时查询到最新区块
func (b *Block) GetLogs(ctx context.Context, addresses []common.Address, topics [][]common.Hash, fromBlock uint64, toBlock *uint64) ([]types.Log, error) {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		Addresses: addresses,
		Topics:    topics,
	}
	if toBlock != nil {
		query.ToBlock = new(big.Int).SetUint64(*toBlock)
	}
	return b.backend.FilterLogs(ctx, query)
}

// GetCurrentBlockNumber 获取当前最新区块号
func (b *Block) GetCurrentBlockNumber(ctx context.Context) (uint64, error) {
	return b.backend.BlockNumber(ctx)
}
