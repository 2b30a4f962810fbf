package chain

import (
	"math/big"

	"github.com/blues/crowdmint/internal/errs"
	"github.com/blues/crowdmint/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func bigField(values map[string]interface{}, key string) (*big.Int, error) {
	v, ok := values[key]
	if !ok {
		return nil, errs.FormatError("missing field %s", key)
	}
	n, ok := v.(*big.Int)
	if !ok || n == nil {
		return nil, errs.FormatError("field %s: expected uint256, got %T", key, v)
	}
	return n, nil
}

func addressField(values map[string]interface{}, key string) (string, error) {
	v, ok := values[key]
	if !ok {
		return "", errs.FormatError("missing field %s", key)
	}
	addr, ok := v.(common.Address)
	if !ok {
		return "", errs.FormatError("field %s: expected address, got %T", key, v)
	}
	return addr.Hex(), nil
}

func stringField(values map[string]interface{}, key string) (string, error) {
	v, ok := values[key]
	if !ok {
		return "", errs.FormatError("missing field %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", errs.FormatError("field %s: expected string, got %T", key, v)
	}
	return s, nil
}

func boolField(values map[string]interface{}, key string) (bool, error) {
	v, ok := values[key]
	if !ok {
		return false, errs.FormatError("missing field %s", key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, errs.FormatError("field %s: expected bool, got %T", key, v)
	}
	return b, nil
}

// stateField 兼容 uint8 与 uint256 两种状态编码
func stateField(values map[string]interface{}, key string) (int64, error) {
	v, ok := values[key]
	if !ok {
		return 0, errs.FormatError("missing field %s", key)
	}
	switch s := v.(type) {
	case uint8:
		return int64(s), nil
	case *big.Int:
		if s == nil || !s.IsInt64() {
			return 0, errs.FormatError("field %s out of range", key)
		}
		return s.Int64(), nil
	default:
		return 0, errs.FormatError("field %s: expected uint8, got %T", key, v)
	}
}

// decodeCampaign getProjectDetails 输出转为原始项目数据
func decodeCampaign(values map[string]interface{}) (*model.RawCampaign, error) {
	var (
		raw model.RawCampaign
		err error
	)

	if raw.ProjectStarter, err = addressField(values, "projectStarter"); err != nil {
		return nil, err
	}
	if raw.MinContribution, err = bigField(values, "minContribution"); err != nil {
		return nil, err
	}
	if raw.ProjectDeadline, err = bigField(values, "projectDeadline"); err != nil {
		return nil, err
	}
	if raw.GoalAmount, err = bigField(values, "goalAmount"); err != nil {
		return nil, err
	}
	if raw.CompletedTime, err = bigField(values, "completedTime"); err != nil {
		return nil, err
	}
	if raw.CurrentAmount, err = bigField(values, "currentAmount"); err != nil {
		return nil, err
	}
	if raw.Title, err = stringField(values, "title"); err != nil {
		return nil, err
	}
	if raw.Desc, err = stringField(values, "desc"); err != nil {
		return nil, err
	}
	if raw.CurrentState, err = stateField(values, "currentState"); err != nil {
		return nil, err
	}
	if raw.Balance, err = bigField(values, "balance"); err != nil {
		return nil, err
	}
	return &raw, nil
}

// decodeWithdrawRequest withdrawRequests(i) 输出或 WithdrawRequestCreated 事件
func decodeWithdrawRequest(requestID *big.Int, values map[string]interface{}) (*model.RawWithdrawalRequest, error) {
	var (
		raw = model.RawWithdrawalRequest{RequestID: requestID}
		err error
	)

	if raw.Description, err = stringField(values, "description"); err != nil {
		return nil, err
	}
	if raw.Amount, err = bigField(values, "amount"); err != nil {
		return nil, err
	}
	if raw.NoOfVotes, err = bigField(values, "noOfVotes"); err != nil {
		return nil, err
	}
	if raw.IsCompleted, err = boolField(values, "isCompleted"); err != nil {
		return nil, err
	}
	if raw.Recipient, err = addressField(values, "reciptent"); err != nil {
		return nil, err
	}
	return &raw, nil
}

// decodeContributionReceived 工厂合约 ContributionReceived 事件
func decodeContributionReceived(values map[string]interface{}, log types.Log) (model.ContributionEvent, error) {
	project, err := addressField(values, "projectAddress")
	if err != nil {
		return model.ContributionEvent{}, err
	}
	contributor, err := addressField(values, "contributor")
	if err != nil {
		return model.ContributionEvent{}, err
	}
	amount, err := bigField(values, "contributedAmount")
	if err != nil {
		return model.ContributionEvent{}, err
	}
	return model.ContributionEvent{
		ProjectAddress: project,
		Contributor:    contributor,
		Amount:         amount,
		TxHash:         log.TxHash.Hex(),
		BlockNumber:    log.BlockNumber,
		LogIndex:       log.Index,
	}, nil
}

// decodeFundingReceived 项目合约 FundingReceived 事件
func decodeFundingReceived(values map[string]interface{}, log types.Log) (model.ContributionEvent, error) {
	contributor, err := addressField(values, "contributor")
	if err != nil {
		return model.ContributionEvent{}, err
	}
	amount, err := bigField(values, "amount")
	if err != nil {
		return model.ContributionEvent{}, err
	}
	return model.ContributionEvent{
		ProjectAddress: log.Address.Hex(),
		Contributor:    contributor,
		Amount:         amount,
		TxHash:         log.TxHash.Hex(),
		BlockNumber:    log.BlockNumber,
		LogIndex:       log.Index,
	}, nil
}
