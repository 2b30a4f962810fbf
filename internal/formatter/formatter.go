// Package formatter 将合约原始记录转换为展示实体，纯函数、无副作用。
package formatter

import (
	"math/big"
	"time"

	"github.com/blues/crowdmint/internal/errs"
	"github.com/blues/crowdmint/internal/logger"
	"github.com/blues/crowdmint/internal/model"
	"github.com/blues/crowdmint/internal/unit"
)

// DeadlineLayout 截止日期展示格式 DD/MM/YYYY
const DeadlineLayout = "02/01/2006"

// states 合约状态码映射
var states = map[int64]model.CampaignStatus{
	0: model.CampaignStatusFundraising,
	1: model.CampaignStatusExpired,
	2: model.CampaignStatusSuccessful,
}

// ParseState 解析合约状态码，表外的值返回 FORMAT_ERROR
func ParseState(code int64) (model.CampaignStatus, error) {
	status, ok := states[code]
	if !ok {
		return "", errs.FormatError("unknown contract state %d", code)
	}
	return status, nil
}

// FormatCampaign 格式化众筹项目
func FormatCampaign(raw model.RawCampaign, address string) (*model.Campaign, error) {
	if err := checkRawCampaign(raw); err != nil {
		return nil, err
	}

	status, err := ParseState(raw.CurrentState)
	if err != nil {
		return nil, err
	}

	deadline := raw.ProjectDeadline.Int64()
	campaign := &model.Campaign{
		Address:         address,
		Creator:         raw.ProjectStarter,
		Title:           raw.Title,
		Description:     raw.Desc,
		MinContribution: unit.FormatBase(raw.MinContribution),
		GoalAmount:      unit.FormatBase(raw.GoalAmount),
		CurrentAmount:   unit.FormatBase(raw.CurrentAmount),
		DeadlineAt:      deadline,
		Deadline:        FormatDeadline(deadline),
		StateCode:       raw.CurrentState,
		Status:          status,
		Progress:        Progress(raw.CurrentAmount, raw.GoalAmount),
		Available:       true,
	}
	if campaign.IsSuccessful() && raw.Balance != nil {
		campaign.ContractBalance = unit.FormatBase(raw.Balance)
	}

	return campaign, nil
}

// FallbackCampaign 格式化失败时的占位项目
func FallbackCampaign(address string) *model.Campaign {
	return &model.Campaign{
		Address:         address,
		MinContribution: "0",
		GoalAmount:      "0",
		CurrentAmount:   "0",
		Status:          model.CampaignStatusUnavailable,
		StateCode:       -1,
	}
}

func checkRawCampaign(raw model.RawCampaign) error {
	switch {
	case raw.ProjectStarter == "":
		return errs.FormatError("campaign record has no creator")
	case raw.MinContribution == nil:
		return errs.FormatError("campaign record has no minContribution")
	case raw.GoalAmount == nil:
		return errs.FormatError("campaign record has no goalAmount")
	case raw.CurrentAmount == nil:
		return errs.FormatError("campaign record has no currentAmount")
	case raw.ProjectDeadline == nil || !raw.ProjectDeadline.IsInt64():
		return errs.FormatError("campaign record has no valid projectDeadline")
	}
	return nil
}

// Progress 募资进度百分比，四舍五入并限制在 [0, 100]；目标为 0 时返回 0
func Progress(current, goal *big.Int) int {
	if current == nil || goal == nil || goal.Sign() <= 0 || current.Sign() <= 0 {
		return 0
	}

	// round(current*100/goal) = floor((200*current + goal) / (2*goal))
	num := new(big.Int).Mul(current, big.NewInt(200))
	num.Add(num, goal)
	den := new(big.Int).Mul(goal, big.NewInt(2))
	p := new(big.Int).Quo(num, den)

	if p.Cmp(big.NewInt(100)) > 0 {
		return 100
	}
	return int(p.Int64())
}

// FormatDeadline 毫秒时间戳格式化为 DD/MM/YYYY (UTC)
func FormatDeadline(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(DeadlineLayout)
}

// FormatWithdrawalRequest 格式化提现请求
func FormatWithdrawalRequest(raw model.RawWithdrawalRequest) (*model.WithdrawalRequest, error) {
	switch {
	case raw.RequestID == nil:
		return nil, errs.FormatError("withdraw request has no requestId")
	case raw.Amount == nil:
		return nil, errs.FormatError("withdraw request %s has no amount", raw.RequestID)
	case raw.NoOfVotes == nil || !raw.NoOfVotes.IsUint64():
		return nil, errs.FormatError("withdraw request %s has no valid vote count", raw.RequestID)
	case raw.Recipient == "":
		return nil, errs.FormatError("withdraw request %s has no recipient", raw.RequestID)
	}

	status := model.WithdrawStatusPending
	if raw.IsCompleted {
		status = model.WithdrawStatusCompleted
	}

	return &model.WithdrawalRequest{
		RequestID:   raw.RequestID.String(),
		Description: raw.Description,
		Amount:      unit.FormatBase(raw.Amount),
		AmountWei:   raw.Amount.String(),
		Recipient:   raw.Recipient,
		TotalVote:   raw.NoOfVotes.Uint64(),
		Status:      status,
	}, nil
}

// FormatWithdrawalRequests 批量格式化，异常记录记录日志后跳过，其余请求保持原顺序
func FormatWithdrawalRequests(raws []model.RawWithdrawalRequest) []model.WithdrawalRequest {
	result := make([]model.WithdrawalRequest, 0, len(raws))
	for _, raw := range raws {
		req, err := FormatWithdrawalRequest(raw)
		if err != nil {
			logger.Warn("Skipping malformed withdraw request: %v", err)
			continue
		}
		result = append(result, *req)
	}
	return result
}
