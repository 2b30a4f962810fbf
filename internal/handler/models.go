package handler

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/blues/crowdmint/internal/model"
	"github.com/blues/crowdmint/internal/unit"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Amount 展示单位金额；JSON 字符串原样保留，JSON 数字按数值输入换算
type Amount string

// UnmarshalJSON 实现 json.Unmarshaler
func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	wei, err := unit.ToBaseUnitFloat(f)
	if err != nil {
		// 交由业务层按各自的错误码处理
		*a = Amount(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	*a = Amount(unit.FormatBase(wei))
	return nil
}

func (a Amount) String() string {
	return string(a)
}

// 项目相关请求/响应模型

// StartFundraisingRequest 发起众筹请求
type StartFundraisingRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description" binding:"required"`
	MinContribution Amount `json:"minContribution" binding:"required"`
	Target          Amount `json:"target" binding:"required"`
	Deadline        int64  `json:"deadline" binding:"required"` // 毫秒时间戳
	Account         string `json:"account" binding:"required"`
}

// StartFundraisingResponse 发起众筹响应
type StartFundraisingResponse struct {
	Address string `json:"address"`
}

// GetCampaignsResponse 项目列表响应
type GetCampaignsResponse struct {
	Campaigns []model.Campaign `json:"campaigns"`
	Total     int              `json:"total"`
}

// ContributeRequest 贡献请求，金额为展示单位，支持数字或字符串
type ContributeRequest struct {
	Amount  Amount `json:"amount" binding:"required"`
	Account string      `json:"account" binding:"required"`
}

// 提现请求相关模型

// CreateWithdrawRequest 创建提现请求
type CreateWithdrawRequest struct {
	Amount  Amount `json:"amount" binding:"required"`
	Account string      `json:"account" binding:"required"`
}

// AccountRequest 投票与提现只需要账户
type AccountRequest struct {
	Account string `json:"account" binding:"required"`
}

// GetWithdrawRequestsResponse 提现请求列表响应
type GetWithdrawRequestsResponse struct {
	Requests []model.WithdrawalRequest `json:"requests"`
}

// 贡献相关响应模型

// GetContributionsResponse 账户贡献列表
type GetContributionsResponse struct {
	Account       string                      `json:"account"`
	Contributions []model.ProjectContribution `json:"contributions"`
}

// GetContributorsResponse 项目贡献者列表
type GetContributorsResponse struct {
	Contributors []model.ContributorTotal `json:"contributors"`
}

// AccountResponse 当前账户
type AccountResponse struct {
	Account string `json:"account"`
}
