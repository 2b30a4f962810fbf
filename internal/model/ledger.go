package model

import (
	"math/big"
)

// ContributeCall 贡献调用参数
type ContributeCall struct {
	ContractAddress string
	Amount          *big.Int
	Account         string
}

// WithdrawRequestCall 创建提现请求参数
type WithdrawRequestCall struct {
	Description string
	Amount      *big.Int
	Recipient   string
	Account     string
}

// VoteCall 投票参数
type VoteCall struct {
	ContractAddress string
	RequestID       string
	Account         string
}

// WithdrawCall 提现参数
type WithdrawCall struct {
	ContractAddress string
	RequestID       string
	Account         string
	Amount          *big.Int
}

// FundraisingCall 发起众筹参数
type FundraisingCall struct {
	MinContribution *big.Int
	Deadline        int64 // 毫秒时间戳
	Target          *big.Int
	Title           string
	Description     string
	Account         string
}
