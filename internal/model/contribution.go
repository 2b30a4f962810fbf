package model

import (
	"math/big"
	"time"
)

// ContributionEvent 链上贡献事件，金额为 wei
type ContributionEvent struct {
	ProjectAddress string
	Contributor    string
	Amount         *big.Int
	TxHash         string
	BlockNumber    uint64
	LogIndex       uint
}

// ProjectContribution 按项目展示的单条贡献
type ProjectContribution struct {
	ProjectAddress string `json:"projectAddress"`
	Contributor    string `json:"contributor"`
	Amount         string `json:"amount"`
}

// ContributorTotal 按贡献者汇总
type ContributorTotal struct {
	Contributor string `json:"contributor"`
	Amount      string `json:"amount"`
}

// ContributionRecordModel 已索引的贡献事件
type ContributionRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ProjectAddress string `json:"project_address" gorm:"type:varchar(42);index;not null"`
	Contributor    string `json:"contributor" gorm:"type:varchar(42);index;not null"`
	Amount         string `json:"amount" gorm:"type:varchar(80);not null"` // wei 十进制字符串
	TxHash         string `json:"tx_hash" gorm:"type:varchar(66);uniqueIndex:idx_contribution_tx_log;not null"`
	LogIndex       int64  `json:"log_index" gorm:"uniqueIndex:idx_contribution_tx_log"`
	BlockNum       int64  `json:"block_num" gorm:"index"`
}

// TableName 自定义表名
func (ContributionRecordModel) TableName() string {
	return "contribution_record"
}

// NewContributionRecord 由链上事件构造索引记录
func NewContributionRecord(ev ContributionEvent) ContributionRecordModel {
	amount := "0"
	if ev.Amount != nil {
		amount = ev.Amount.String()
	}
	return ContributionRecordModel{
		ProjectAddress: ev.ProjectAddress,
		Contributor:    ev.Contributor,
		Amount:         amount,
		TxHash:         ev.TxHash,
		LogIndex:       int64(ev.LogIndex),
		BlockNum:       int64(ev.BlockNumber),
	}
}

// ToEvent 还原为链上事件
func (m ContributionRecordModel) ToEvent() ContributionEvent {
	amount, ok := new(big.Int).SetString(m.Amount, 10)
	if !ok {
		amount = new(big.Int)
	}
	return ContributionEvent{
		ProjectAddress: m.ProjectAddress,
		Contributor:    m.Contributor,
		Amount:         amount,
		TxHash:         m.TxHash,
		BlockNumber:    uint64(m.BlockNum),
		LogIndex:       uint(m.LogIndex),
	}
}

// SyncCursorModel 事件同步游标
type SyncCursorModel struct {
	Name      string    `json:"name" gorm:"type:varchar(64);primaryKey"`
	BlockNum  int64     `json:"block_num" gorm:"not null;default:0"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 自定义表名
func (SyncCursorModel) TableName() string {
	return "sync_cursor"
}
