package model

import (
	"math/big"
)

// WithdrawStatus 提现请求状态
type WithdrawStatus string

const (
	WithdrawStatusPending   WithdrawStatus = "Pending"   // 待投票/待提现
	WithdrawStatusCompleted WithdrawStatus = "Completed" // 已提现
)

// RawWithdrawalRequest 合约返回的原始提现请求
type RawWithdrawalRequest struct {
	RequestID   *big.Int
	Description string
	Amount      *big.Int
	NoOfVotes   *big.Int
	IsCompleted bool
	Recipient   string
}

// WithdrawalRequest 展示用提现请求
type WithdrawalRequest struct {
	RequestID   string         `json:"requestId"`
	Description string         `json:"desc"`
	Amount      string         `json:"amount"`
	AmountWei   string         `json:"amountWei"`
	Recipient   string         `json:"recipient"`
	TotalVote   uint64         `json:"totalVote"`
	Status      WithdrawStatus `json:"status"`
}

// IsCompleted 是否已完成提现
func (r *WithdrawalRequest) IsCompleted() bool {
	return r.Status == WithdrawStatusCompleted
}

// PatchKind 状态补丁类型
type PatchKind int

const (
	PatchVote     PatchKind = iota + 1 // 票数 +1
	PatchComplete                      // 标记为已完成
)

func (k PatchKind) String() string {
	switch k {
	case PatchVote:
		return "vote"
	case PatchComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Patch 外部调用成功后产生的单条请求状态变更
type Patch struct {
	RequestID string    `json:"requestId"`
	Kind      PatchKind `json:"kind"`
}
