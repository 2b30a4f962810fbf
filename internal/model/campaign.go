package model

import (
	"math/big"
)

// CampaignStatus 众筹状态
type CampaignStatus string

const (
	CampaignStatusFundraising CampaignStatus = "Fundraising" // 募资中
	CampaignStatusExpired     CampaignStatus = "Expired"     // 已过期
	CampaignStatusSuccessful  CampaignStatus = "Successful"  // 已成功
	CampaignStatusUnavailable CampaignStatus = "Unavailable" // 链上数据无法解析
)

// RawCampaign 合约 getProjectDetails 返回的原始数据
type RawCampaign struct {
	ProjectStarter  string
	MinContribution *big.Int
	ProjectDeadline *big.Int // 毫秒时间戳
	GoalAmount      *big.Int
	CompletedTime   *big.Int
	CurrentAmount   *big.Int
	Title           string
	Desc            string
	CurrentState    int64
	Balance         *big.Int
}

// Campaign 展示用众筹项目，金额均为展示单位
type Campaign struct {
	Address         string         `json:"address"`
	Creator         string         `json:"creator"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	MinContribution string         `json:"minContribution"`
	GoalAmount      string         `json:"goalAmount"`
	CurrentAmount   string         `json:"currentAmount"`
	ContractBalance string         `json:"contractBalance,omitempty"` // 仅 Successful 时存在
	DeadlineAt      int64          `json:"deadlineAt"`
	Deadline        string         `json:"deadline"`
	StateCode       int64          `json:"stateCode"`
	Status          CampaignStatus `json:"state"`
	Progress        int            `json:"progress"`
	Available       bool           `json:"available"`
}

// IsSuccessful 是否已募资成功
func (c *Campaign) IsSuccessful() bool {
	return c.Status == CampaignStatusSuccessful
}
