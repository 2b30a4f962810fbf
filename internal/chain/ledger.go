package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	signer "github.com/blues/crowdmint/internal/ethereum"
	"github.com/blues/crowdmint/internal/errs"
	"github.com/blues/crowdmint/internal/logger"
	"github.com/blues/crowdmint/internal/model"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const defaultTxTimeout = 2 * time.Minute

// LedgerOptions Ledger 构造参数
type LedgerOptions struct {
	CrowdfundingAddress string
	CrowdfundingABI     abi.ABI
	ProjectABI          abi.ABI
	StartBlock          uint64        // 日志查询起始区块
	TxTimeout           time.Duration // 等待交易上链的超时
}

// Ledger 通过 JSON-RPC 访问众筹合约
type Ledger struct {
	backend      Backend
	signer       *signer.Signer
	block        *Block
	crowdfunding *Contract
	projectABI   abi.ABI
	startBlock   uint64
	txTimeout    time.Duration
}

// NewLedger 创建 Ledger；signer 为 nil 时只读
func NewLedger(backend Backend, s *signer.Signer, opts LedgerOptions) (*Ledger, error) {
	if !common.IsHexAddress(opts.CrowdfundingAddress) {
		return nil, fmt.Errorf("invalid crowdfunding contract address: %q", opts.CrowdfundingAddress)
	}
	timeout := opts.TxTimeout
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}

	return &Ledger{
		backend:      backend,
		signer:       s,
		block:        NewBlock(backend),
		crowdfunding: NewContract("crowdfunding", common.HexToAddress(opts.CrowdfundingAddress), opts.CrowdfundingABI),
		projectABI:   opts.ProjectABI,
		startBlock:   opts.StartBlock,
		txTimeout:    timeout,
	}, nil
}

// Crowdfunding 工厂合约
func (l *Ledger) Crowdfunding() *Contract {
	return l.crowdfunding
}

func (l *Ledger) project(address string) (*Contract, error) {
	if !common.IsHexAddress(address) {
		return nil, errs.Newf(errs.CodeInvalidArgument, "invalid campaign address: %q", address)
	}
	return NewContract("project", common.HexToAddress(address), l.projectABI), nil
}

func parseRequestID(id string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(id, 10)
	if !ok || n.Sign() < 0 {
		return nil, errs.Newf(errs.CodeInvalidArgument, "invalid request id: %q", id)
	}
	return n, nil
}

// transact 发送交易并等待回执，回执失败视为错误
func (l *Ledger) transact(ctx context.Context, contract *Contract, account string, value *big.Int, method string, args ...interface{}) (*types.Receipt, error) {
	opts, err := l.signer.TransactOpts(ctx, account, value)
	if err != nil {
		return nil, err
	}

	tx, err := contract.Bound(l.backend).Transact(opts, method, args...)
	if err != nil {
		return nil, err
	}
	logger.Info("Sent %s.%s tx: %s", contract.GetName(), method, tx.Hash().Hex())

	waitCtx, cancel := context.WithTimeout(ctx, l.txTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, l.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for tx %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("transaction %s reverted", tx.Hash().Hex())
	}
	return receipt, nil
}

// LoadAccount 当前签名账户，未配置私钥时为空串
func (l *Ledger) LoadAccount(ctx context.Context) (string, error) {
	return l.signer.Address(), nil
}

// Contribute 向项目贡献，金额为 wei
func (l *Ledger) Contribute(ctx context.Context, call model.ContributeCall) error {
	if !common.IsHexAddress(call.ContractAddress) {
		return errs.Newf(errs.CodeInvalidArgument, "invalid campaign address: %q", call.ContractAddress)
	}
	_, err := l.transact(ctx, l.crowdfunding, call.Account, call.Amount,
		MethodContribute, common.HexToAddress(call.ContractAddress))
	return err
}

// CreateWithdrawRequest 创建提现请求，返回合约记录的新请求
func (l *Ledger) CreateWithdrawRequest(ctx context.Context, contractAddress string, call model.WithdrawRequestCall) (*model.RawWithdrawalRequest, error) {
	project, err := l.project(contractAddress)
	if err != nil {
		return nil, err
	}
	if !common.IsHexAddress(call.Recipient) {
		return nil, errs.Newf(errs.CodeInvalidArgument, "invalid recipient: %q", call.Recipient)
	}

	receipt, err := l.transact(ctx, project, call.Account, nil,
		MethodCreateWithdrawRequest, call.Description, call.Amount, common.HexToAddress(call.Recipient))
	if err != nil {
		return nil, err
	}

	values, _, err := project.FindEvent(receipt, project.GetAddress(), EventWithdrawRequestCreated)
	if err != nil {
		return nil, err
	}
	requestID, err := bigField(values, "requestId")
	if err != nil {
		return nil, err
	}
	return decodeWithdrawRequest(requestID, values)
}

// VoteWithdrawRequest 对提现请求投票
func (l *Ledger) VoteWithdrawRequest(ctx context.Context, call model.VoteCall) error {
	project, err := l.project(call.ContractAddress)
	if err != nil {
		return err
	}
	requestID, err := parseRequestID(call.RequestID)
	if err != nil {
		return err
	}
	_, err = l.transact(ctx, project, call.Account, nil, MethodVoteWithdrawRequest, requestID)
	return err
}

// WithdrawAmount 执行提现
func (l *Ledger) WithdrawAmount(ctx context.Context, call model.WithdrawCall) error {
	project, err := l.project(call.ContractAddress)
	if err != nil {
		return err
	}
	requestID, err := parseRequestID(call.RequestID)
	if err != nil {
		return err
	}
	_, err = l.transact(ctx, project, call.Account, nil, MethodWithdrawRequestedAmount, requestID)
	return err
}

// StartFundraising 发起众筹，返回新项目合约地址
func (l *Ledger) StartFundraising(ctx context.Context, call model.FundraisingCall) (string, error) {
	receipt, err := l.transact(ctx, l.crowdfunding, call.Account, nil, MethodCreateProject,
		call.MinContribution, big.NewInt(call.Deadline), call.Target, call.Title, call.Description)
	if err != nil {
		return "", err
	}

	values, _, err := l.crowdfunding.FindEvent(receipt, l.crowdfunding.GetAddress(), EventProjectStarted)
	if err != nil {
		return "", err
	}
	return addressField(values, "projectContractAddress")
}

// ListCampaignAddresses 全部项目合约地址
func (l *Ledger) ListCampaignAddresses(ctx context.Context) ([]string, error) {
	values, err := l.crowdfunding.Call(ctx, l.backend, MethodReturnAllProjects)
	if err != nil {
		return nil, err
	}
	raw, ok := values["projects"]
	if !ok {
		return nil, errs.FormatError("missing field projects")
	}
	addresses, ok := raw.([]common.Address)
	if !ok {
		return nil, errs.FormatError("field projects: expected address[], got %T", raw)
	}

	list := make([]string, 0, len(addresses))
	for _, a := range addresses {
		list = append(list, a.Hex())
	}
	return list, nil
}

// GetCampaign 读取项目详情
func (l *Ledger) GetCampaign(ctx context.Context, address string) (*model.RawCampaign, error) {
	project, err := l.project(address)
	if err != nil {
		return nil, err
	}
	values, err := project.Call(ctx, l.backend, MethodGetProjectDetails)
	if err != nil {
		return nil, err
	}
	return decodeCampaign(values)
}

// GetWithdrawRequests 读取项目的全部提现请求，按 requestId 升序
func (l *Ledger) GetWithdrawRequests(ctx context.Context, address string) ([]model.RawWithdrawalRequest, error) {
	project, err := l.project(address)
	if err != nil {
		return nil, err
	}

	values, err := project.Call(ctx, l.backend, MethodNumOfWithdrawRequests)
	if err != nil {
		return nil, err
	}
	count, err := bigField(values, "count")
	if err != nil {
		return nil, err
	}
	if !count.IsInt64() {
		return nil, errs.FormatError("withdraw request count out of range: %s", count)
	}

	n := count.Int64()
	list := make([]model.RawWithdrawalRequest, 0, n)
	for i := int64(0); i < n; i++ {
		id := big.NewInt(i)
		values, err := project.Call(ctx, l.backend, MethodWithdrawRequests, id)
		if err != nil {
			return nil, err
		}
		raw, err := decodeWithdrawRequest(id, values)
		if err != nil {
			return nil, err
		}
		list = append(list, *raw)
	}
	return list, nil
}

// GetMyContributionList 查询账户在工厂合约上的全部贡献事件
func (l *Ledger) GetMyContributionList(ctx context.Context, account string) ([]model.ContributionEvent, error) {
	if !common.IsHexAddress(account) {
		return nil, errs.Newf(errs.CodeInvalidArgument, "invalid account: %q", account)
	}
	topics := [][]common.Hash{
		{l.crowdfunding.EventID(EventContributionReceived)},
		{common.BytesToHash(common.HexToAddress(account).Bytes())},
	}
	return l.contributionLogs(ctx, topics, l.startBlock, nil)
}

// ContributionLogs 区块区间内的全部贡献事件，供索引任务使用
func (l *Ledger) ContributionLogs(ctx context.Context, fromBlock, toBlock uint64) ([]model.ContributionEvent, error) {
	topics := [][]common.Hash{{l.crowdfunding.EventID(EventContributionReceived)}}
	return l.contributionLogs(ctx, topics, fromBlock, &toBlock)
}

func (l *Ledger) contributionLogs(ctx context.Context, topics [][]common.Hash, fromBlock uint64, toBlock *uint64) ([]model.ContributionEvent, error) {
	logs, err := l.block.GetLogs(ctx, []common.Address{l.crowdfunding.GetAddress()}, topics, fromBlock, toBlock)
	if err != nil {
		return nil, fmt.Errorf("failed to filter contribution logs: %w", err)
	}

	events := make([]model.ContributionEvent, 0, len(logs))
	for _, lg := range logs {
		if lg.Removed {
			continue
		}
		_, values, err := l.crowdfunding.ParseEvent(lg)
		if err != nil {
			return nil, err
		}
		ev, err := decodeContributionReceived(values, lg)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// GetContributors 项目合约上的全部 FundingReceived 事件
func (l *Ledger) GetContributors(ctx context.Context, address string) ([]model.ContributionEvent, error) {
	project, err := l.project(address)
	if err != nil {
		return nil, err
	}

	topics := [][]common.Hash{{project.EventID(EventFundingReceived)}}
	logs, err := l.block.GetLogs(ctx, []common.Address{project.GetAddress()}, topics, l.startBlock, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to filter funding logs: %w", err)
	}

	events := make([]model.ContributionEvent, 0, len(logs))
	for _, lg := range logs {
		if lg.Removed {
			continue
		}
		_, values, err := project.ParseEvent(lg)
		if err != nil {
			return nil, err
		}
		ev, err := decodeFundingReceived(values, lg)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// CurrentBlock 最新区块号
func (l *Ledger) CurrentBlock(ctx context.Context) (uint64, error) {
	return l.block.GetCurrentBlockNumber(ctx)
}
