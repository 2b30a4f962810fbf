package chain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/blues/crowdmint/internal/config"
	signer "github.com/blues/crowdmint/internal/ethereum"
	"github.com/blues/crowdmint/internal/logger"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Manager 单链管理器
type Manager struct {
	mu     sync.RWMutex
	client *ethclient.Client // 链客户端
	ledger *Ledger
	config config.ChainConfig
}

// NewManager 连接节点并初始化合约
func NewManager(cfg config.ChainConfig, startBlock int64) (*Manager, error) {
	client, err := createChainClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize client: %w", err)
	}

	crowdfundingABI, err := LoadABI(cfg.CrowdfundingABIPath, CrowdfundingABI)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to load crowdfunding ABI: %w", err)
	}
	projectABI, err := LoadABI(cfg.ProjectABIPath, ProjectABI)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to load project ABI: %w", err)
	}

	s, err := signer.NewSigner(cfg.PrivateKey, cfg.ChainId)
	if err != nil {
		client.Close()
		return nil, err
	}
	if s == nil {
		logger.Warn("No private key configured, running read-only")
	} else {
		logger.Info("Signing account: %s", s.Address())
	}

	if startBlock < 0 {
		startBlock = 0
	}
	ledger, err := NewLedger(client, s, LedgerOptions{
		CrowdfundingAddress: cfg.CrowdfundingAddress,
		CrowdfundingABI:     crowdfundingABI,
		ProjectABI:          projectABI,
		StartBlock:          uint64(startBlock),
		TxTimeout:           time.Duration(cfg.TxTimeout) * time.Second,
	})
	if err != nil {
		client.Close()
		return nil, err
	}

	logger.Info("Initialized crowdfunding contract: %s", cfg.CrowdfundingAddress)
	return &Manager{client: client, ledger: ledger, config: cfg}, nil
}

// createChainClient 创建链客户端并测试连接
func createChainClient(cfg config.ChainConfig) (*ethclient.Client, error) {
	if cfg.RpcUrl == "" {
		return nil, fmt.Errorf("no RPC URL configured")
	}

	logger.Info("Creating client connection (RPC: %s, chain id: %d)", cfg.RpcUrl, cfg.ChainId)
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", cfg.RpcUrl, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := client.BlockNumber(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("client connection test failed: %w", err)
	}
	return client, nil
}

// GetLedger 获取合约访问层
func (m *Manager) GetLedger() *Ledger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ledger
}

// GetHealthStatus 获取健康状态
func (m *Manager) GetHealthStatus(ctx context.Context) map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	health := map[string]interface{}{
		"chain_id":      m.config.ChainId,
		"client_status": "connected",
		"crowdfunding":  m.ledger.Crowdfunding().GetAddress().Hex(),
	}

	if m.client == nil {
		health["client_status"] = "not_initialized"
		return health
	}
	block, err := m.client.BlockNumber(ctx)
	if err != nil {
		health["client_status"] = "disconnected"
		return health
	}
	health["block_number"] = block
	return health
}

// Close 关闭管理器
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		m.client.Close()
		m.client = nil
	}

	logger.Info("Chain manager closed")
	return nil
}
