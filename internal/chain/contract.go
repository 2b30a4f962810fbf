package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/blues/crowdmint/internal/errs"
	"github.com/blues/crowdmint/internal/logger"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Contract 合约工具类
type Contract struct {
	address common.Address // 合约地址
	abi     abi.ABI        // 合约ABI
	name    string         // 合约名称
}

// NewContract 创建合约实例
func NewContract(name string, address common.Address, parsed abi.ABI) *Contract {
	return &Contract{
		address: address,
		abi:     parsed,
		name:    name,
	}
}

// LoadABI 加载合约ABI；path 为空时使用内置 ABI
func LoadABI(path, builtin string) (abi.ABI, error) {
	if path == "" {
		return abi.JSON(strings.NewReader(builtin))
	}

	abiData, err := os.ReadFile(path)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to load ABI from %s: %w", path, err)
	}

	// 兼容 hardhat/truffle 的完整编译输出
	var compiledOutput struct {
		ABI json.RawMessage `json:"abi"`
	}
	if err := json.Unmarshal(abiData, &compiledOutput); err == nil && compiledOutput.ABI != nil {
		parsed, err := abi.JSON(bytes.NewReader(compiledOutput.ABI))
		if err != nil {
			return abi.ABI{}, fmt.Errorf("failed to parse ABI from compiled output: %w", err)
		}
		return parsed, nil
	}

	parsed, err := abi.JSON(bytes.NewReader(abiData))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return parsed, nil
}

// GetAddress 获取合约地址
func (c *Contract) GetAddress() common.Address {
	return c.address
}

// GetName 获取合约名称
func (c *Contract) GetName() string {
	return c.name
}

// EventID 事件签名哈希
func (c *Contract) EventID(eventName string) common.Hash {
	return c.abi.Events[eventName].ID
}

// Bound 绑定交易后端，用于发送交易
func (c *Contract) Bound(backend bind.ContractBackend) *bind.BoundContract {
	return bind.NewBoundContract(c.address, c.abi, backend, backend, backend)
}

// Call 只读调用，返回按输出参数名索引的结果
func (c *Contract) Call(ctx context.Context, caller bind.ContractCaller, method string, args ...interface{}) (map[string]interface{}, error) {
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s.%s: %w", c.name, method, err)
	}

	output, err := caller.CallContract(ctx, ethereum.CallMsg{To: &c.address, Data: input}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s.%s call failed: %w", c.name, method, err)
	}

	result := make(map[string]interface{})
	if err := c.abi.UnpackIntoMap(result, method, output); err != nil {
		return nil, errs.FormatError("failed to unpack %s.%s output: %v", c.name, method, err)
	}
	return result, nil
}

// ParseEvent 解析事件日志，返回事件名与参数
func (c *Contract) ParseEvent(log types.Log) (string, map[string]interface{}, error) {
	if len(log.Topics) == 0 {
		return "", nil, errs.FormatError("log %s:%d has no topics", log.TxHash.Hex(), log.Index)
	}

	event, err := c.abi.EventByID(log.Topics[0])
	if err != nil {
		logger.Debug("Unknown event signature: %s in contract %s", log.Topics[0].Hex(), c.name)
		return "", nil, errs.FormatError("unknown event %s in contract %s", log.Topics[0].Hex(), c.name)
	}

	result := make(map[string]interface{})

	var indexed abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if len(indexed) > 0 {
		if err := abi.ParseTopicsIntoMap(result, indexed, log.Topics[1:]); err != nil {
			return event.Name, nil, errs.FormatError("failed to parse topics of %s: %v", event.Name, err)
		}
	}

	if len(log.Data) > 0 {
		if err := c.abi.UnpackIntoMap(result, event.Name, log.Data); err != nil {
			return event.Name, nil, errs.FormatError("failed to unpack %s data: %v", event.Name, err)
		}
	}

	return event.Name, result, nil
}

// FindEvent 在交易回执中查找本合约地址发出的指定事件
func (c *Contract) FindEvent(receipt *types.Receipt, address common.Address, eventName string) (map[string]interface{}, *types.Log, error) {
	id := c.EventID(eventName)
	for _, l := range receipt.Logs {
		if l == nil || l.Address != address || len(l.Topics) == 0 || l.Topics[0] != id {
			continue
		}
		_, values, err := c.ParseEvent(*l)
		if err != nil {
			return nil, nil, err
		}
		return values, l, nil
	}
	return nil, nil, errs.FormatError("event %s not found in receipt %s", eventName, receipt.TxHash.Hex())
}
