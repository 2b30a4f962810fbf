package logic

import (
	"context"

	"github.com/blues/crowdmint/internal/aggregator"
	"github.com/blues/crowdmint/internal/errs"
	"github.com/blues/crowdmint/internal/logger"
	"github.com/blues/crowdmint/internal/model"
	"github.com/ethereum/go-ethereum/common"
)

// ContributionIndex 已索引的贡献事件
type ContributionIndex interface {
	ListByContributor(ctx context.Context, contributor string) ([]model.ContributionEvent, error)
	ListByProject(ctx context.Context, projectAddress string) ([]model.ContributionEvent, error)
}

// ContributionLogic 贡献查询
type ContributionLogic struct {
	ledger Ledger
	index  ContributionIndex // 为 nil 时直接查询链上日志
}

// NewContributionLogic 创建贡献查询逻辑
func NewContributionLogic(ledger Ledger, index ContributionIndex) *ContributionLogic {
	return &ContributionLogic{ledger: ledger, index: index}
}

// GetMyContributions 账户的全部贡献，每个事件一行
func (c *ContributionLogic) GetMyContributions(ctx context.Context, account string) ([]model.ProjectContribution, error) {
	if account == "" {
		return nil, errs.New(errs.CodeInvalidArgument, "account is required")
	}
	if common.IsHexAddress(account) {
		account = common.HexToAddress(account).Hex()
	}

	var (
		events []model.ContributionEvent
		err    error
	)
	if c.index != nil {
		events, err = c.index.ListByContributor(ctx, account)
	} else {
		events, err = c.ledger.GetMyContributionList(ctx, account)
	}
	if err != nil {
		logger.Error("Failed to load contributions of %s: %v", account, err)
		return nil, external(err)
	}

	return aggregator.GroupByProject(events), nil
}

// GetContributors 项目的贡献者及累计金额
func (c *ContributionLogic) GetContributors(ctx context.Context, address string) ([]model.ContributorTotal, error) {
	if address == "" {
		return nil, errs.New(errs.CodeInvalidArgument, "campaign address is required")
	}

	var (
		events []model.ContributionEvent
		err    error
	)
	if c.index != nil && common.IsHexAddress(address) {
		events, err = c.index.ListByProject(ctx, common.HexToAddress(address).Hex())
	} else {
		events, err = c.ledger.GetContributors(ctx, address)
	}
	if err != nil {
		logger.Error("Failed to load contributors of %s: %v", address, err)
		return nil, external(err)
	}
	return aggregator.GroupByContributor(events), nil
}

// LoadAccount 当前账户
func (c *ContributionLogic) LoadAccount(ctx context.Context) (string, error) {
	account, err := c.ledger.LoadAccount(ctx)
	if err != nil {
		return "", external(err)
	}
	return account, nil
}
