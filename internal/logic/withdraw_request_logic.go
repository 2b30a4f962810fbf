package logic

import (
	"context"

	"github.com/blues/crowdmint/internal/errs"
	"github.com/blues/crowdmint/internal/formatter"
	"github.com/blues/crowdmint/internal/logger"
	"github.com/blues/crowdmint/internal/merger"
	"github.com/blues/crowdmint/internal/model"
)

// WithdrawRequestLogic 维护每个项目的提现请求列表，并在操作成功后合并状态
type WithdrawRequestLogic struct {
	ledger   Ledger
	workflow *WorkflowLogic
	store    *merger.Store
}

// NewWithdrawRequestLogic 创建提现请求逻辑
func NewWithdrawRequestLogic(ledger Ledger, workflow *WorkflowLogic, store *merger.Store) *WithdrawRequestLogic {
	return &WithdrawRequestLogic{ledger: ledger, workflow: workflow, store: store}
}

// PatchResult 投票或提现后的结果
type PatchResult struct {
	Patch   model.Patch              `json:"patch"`
	Merged  bool                     `json:"merged"` // 本地列表是否已应用补丁
	Request *model.WithdrawalRequest `json:"request,omitempty"`
}

// LoadRequests 返回本地列表；未加载或 refresh 时从链上重新拉取
func (w *WithdrawRequestLogic) LoadRequests(ctx context.Context, address string, refresh bool) ([]model.WithdrawalRequest, error) {
	if address == "" {
		return nil, errs.New(errs.CodeInvalidArgument, "campaign address is required")
	}

	board := w.store.Board(address)
	if board.Loaded() && !refresh {
		return board.Snapshot(), nil
	}

	raws, err := w.ledger.GetWithdrawRequests(ctx, address)
	if err != nil {
		logger.Error("Failed to load withdraw requests of %s: %v", address, err)
		if !board.Loaded() {
			w.store.Drop(address)
		}
		return nil, external(err)
	}

	board.Replace(formatter.FormatWithdrawalRequests(raws))
	return board.Snapshot(), nil
}

// RequestWithdrawal 创建提现请求并追加到本地列表
func (w *WithdrawRequestLogic) RequestWithdrawal(ctx context.Context, address, rawAmount, account string) (*model.WithdrawalRequest, error) {
	req, err := w.workflow.RequestWithdrawal(ctx, address, rawAmount, account)
	if err != nil {
		return nil, err
	}
	w.store.Board(address).Append(*req)
	return req, nil
}

// Vote 投票并合并票数
func (w *WithdrawRequestLogic) Vote(ctx context.Context, address, requestID, account string) (*PatchResult, error) {
	patch, err := w.workflow.Vote(ctx, address, requestID, account)
	if err != nil {
		return nil, err
	}
	return w.merge(address, patch), nil
}

// Withdraw 执行提现并合并完成状态；请求需存在于本地列表
func (w *WithdrawRequestLogic) Withdraw(ctx context.Context, address, requestID, account string) (*PatchResult, error) {
	board := w.store.Board(address)
	if !board.Loaded() {
		if _, err := w.LoadRequests(ctx, address, false); err != nil {
			return nil, err
		}
	}

	req, ok := board.Find(requestID)
	if !ok {
		return nil, errs.Newf(errs.CodeNotFound, "withdraw request %s not found in campaign %s", requestID, address)
	}

	patch, err := w.workflow.ExecuteWithdrawal(ctx, WithdrawInput{
		CampaignAddress: address,
		RequestID:       requestID,
		Account:         account,
		Amount:          req.AmountWei,
		Recipient:       req.Recipient,
	})
	if err != nil {
		return nil, err
	}
	return w.merge(address, patch), nil
}

func (w *WithdrawRequestLogic) merge(address string, patch model.Patch) *PatchResult {
	board := w.store.Board(address)
	result := &PatchResult{Patch: patch, Merged: board.Merge(patch)}
	if req, ok := board.Find(patch.RequestID); ok {
		result.Request = &req
	}
	return result
}
