package logic

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/blues/crowdmint/internal/errs"
	"github.com/blues/crowdmint/internal/formatter"
	"github.com/blues/crowdmint/internal/logger"
	"github.com/blues/crowdmint/internal/model"
	"github.com/blues/crowdmint/internal/unit"
)

// WorkflowLogic 贡献、提现申请、投票、提现四个用户操作
//
// 不持有账户等会话状态，每次调用显式传入；调用方负责防止同一元素的重复提交。
type WorkflowLogic struct {
	ledger Ledger
}

// NewWorkflowLogic 创建操作逻辑
func NewWorkflowLogic(ledger Ledger) *WorkflowLogic {
	return &WorkflowLogic{ledger: ledger}
}

// ContributeResult 贡献成功的确认信息
type ContributeResult struct {
	CampaignAddress string `json:"campaignAddress"`
	Account         string `json:"account"`
	Amount          string `json:"amount"`
	AmountWei       string `json:"amountWei"`
}

// WithdrawInput 提现参数，Recipient 为请求中记录的收款人
type WithdrawInput struct {
	CampaignAddress string
	RequestID       string
	Account         string
	Amount          string // wei
	Recipient       string
}

// Contribute 向项目贡献；金额与最小贡献额均为展示单位
func (w *WorkflowLogic) Contribute(ctx context.Context, campaignAddress, rawAmount, minContribution, account string) (*ContributeResult, error) {
	amount, err := unit.ParseDisplay(rawAmount)
	if err != nil {
		return nil, errs.Newf(errs.CodeBelowMinimum, "invalid contribution amount %q", rawAmount)
	}
	minimum, err := unit.ParseDisplay(minContribution)
	if err != nil {
		return nil, errs.Newf(errs.CodeInvalidArgument, "invalid minimum contribution %q", minContribution)
	}
	if amount.LessThan(minimum) {
		return nil, errs.Newf(errs.CodeBelowMinimum, "contribution %s is below minimum %s", amount.String(), minimum.String())
	}

	wei, err := unit.ToBaseUnit(rawAmount)
	if err != nil {
		return nil, err
	}

	call := model.ContributeCall{
		ContractAddress: campaignAddress,
		Amount:          wei,
		Account:         account,
	}
	if err := w.ledger.Contribute(ctx, call); err != nil {
		logger.Error("Contribute to %s failed: %v", campaignAddress, err)
		return nil, errs.Wrap(errs.CodeContributionFailed, err)
	}

	logger.Info("Contributed %s wei to %s from %s", wei.String(), campaignAddress, account)
	return &ContributeResult{
		CampaignAddress: campaignAddress,
		Account:         account,
		Amount:          unit.FormatBase(wei),
		AmountWei:       wei.String(),
	}, nil
}

// RequestWithdrawal 创建以 account 为收款人的提现请求，返回新请求供调用方追加
func (w *WorkflowLogic) RequestWithdrawal(ctx context.Context, campaignAddress, rawAmount, account string) (*model.WithdrawalRequest, error) {
	amount, err := unit.ParseDisplay(rawAmount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errs.InvalidAmount("withdraw amount must be greater than 0")
	}

	wei, err := unit.ToBaseUnit(rawAmount)
	if err != nil {
		return nil, err
	}

	call := model.WithdrawRequestCall{
		Description: fmt.Sprintf("%s requested for withdraw", unit.WithSymbol(unit.FormatBase(wei))),
		Amount:      wei,
		Recipient:   account,
		Account:     account,
	}
	raw, err := w.ledger.CreateWithdrawRequest(ctx, campaignAddress, call)
	if err != nil {
		logger.Error("Create withdraw request on %s failed: %v", campaignAddress, err)
		return nil, errs.Wrap(errs.CodeWithdrawRequestFailed, err)
	}
	if raw == nil {
		return nil, errs.FormatError("empty withdraw request returned for %s", campaignAddress)
	}

	return formatter.FormatWithdrawalRequest(*raw)
}

// Vote 对提现请求投票，成功后返回票数 +1 补丁
func (w *WorkflowLogic) Vote(ctx context.Context, campaignAddress, requestID, account string) (model.Patch, error) {
	if campaignAddress == "" || requestID == "" || account == "" {
		return model.Patch{}, errs.New(errs.CodeInvalidArgument, "campaign address, request id and account are required")
	}

	call := model.VoteCall{
		ContractAddress: campaignAddress,
		RequestID:       requestID,
		Account:         account,
	}
	if err := w.ledger.VoteWithdrawRequest(ctx, call); err != nil {
		logger.Error("Vote on request %s of %s failed: %v", requestID, campaignAddress, err)
		return model.Patch{}, errs.Wrap(errs.CodeVoteFailed, err)
	}

	return model.Patch{RequestID: requestID, Kind: model.PatchVote}, nil
}

// ExecuteWithdrawal 执行提现，只有收款人可以提现；成功后返回完成补丁
func (w *WorkflowLogic) ExecuteWithdrawal(ctx context.Context, in WithdrawInput) (model.Patch, error) {
	if in.CampaignAddress == "" || in.RequestID == "" || in.Account == "" {
		return model.Patch{}, errs.New(errs.CodeInvalidArgument, "campaign address, request id and account are required")
	}
	if !strings.EqualFold(in.Account, in.Recipient) {
		return model.Patch{}, errs.Newf(errs.CodeNotRecipient, "account %s is not the recipient of request %s", in.Account, in.RequestID)
	}

	var amount *big.Int
	if in.Amount != "" {
		var ok bool
		if amount, ok = new(big.Int).SetString(in.Amount, 10); !ok || amount.Sign() < 0 {
			return model.Patch{}, errs.InvalidAmount("invalid withdraw amount %q", in.Amount)
		}
	}

	call := model.WithdrawCall{
		ContractAddress: in.CampaignAddress,
		RequestID:       in.RequestID,
		Account:         in.Account,
		Amount:          amount,
	}
	if err := w.ledger.WithdrawAmount(ctx, call); err != nil {
		logger.Error("Withdraw request %s of %s failed: %v", in.RequestID, in.CampaignAddress, err)
		return model.Patch{}, errs.Wrap(errs.CodeWithdrawFailed, err)
	}

	return model.Patch{RequestID: in.RequestID, Kind: model.PatchComplete}, nil
}
