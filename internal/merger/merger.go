// Package merger 在外部调用确认成功后，把状态补丁合并进本地持有的提现请求列表。
//
// 合并总是生成新切片，被修改的请求以整体替换的方式更新，其余请求及其顺序保持不变。
// 已完成的请求不会回到 Pending，票数只增不减。
package merger

import (
	"github.com/blues/crowdmint/internal/errs"
	"github.com/blues/crowdmint/internal/model"
)

// Apply 对列表应用单条补丁，目标不存在时返回原列表和 STATE_INCONSISTENCY
func Apply(requests []model.WithdrawalRequest, patch model.Patch) ([]model.WithdrawalRequest, error) {
	idx := indexOf(requests, patch.RequestID)
	if idx < 0 {
		return requests, errs.Newf(errs.CodeStateInconsistency,
			"%s patch refers to unknown withdraw request %s", patch.Kind, patch.RequestID)
	}

	updated := requests[idx]
	switch patch.Kind {
	case model.PatchVote:
		updated.TotalVote++
	case model.PatchComplete:
		updated.Status = model.WithdrawStatusCompleted
	default:
		return requests, errs.Newf(errs.CodeInvalidArgument, "unknown patch kind %d", int(patch.Kind))
	}

	next := make([]model.WithdrawalRequest, len(requests))
	copy(next, requests)
	next[idx] = updated
	return next, nil
}

// Append 追加新创建的请求，已存在相同 requestId 时返回原列表和 STATE_INCONSISTENCY
func Append(requests []model.WithdrawalRequest, req model.WithdrawalRequest) ([]model.WithdrawalRequest, error) {
	if indexOf(requests, req.RequestID) >= 0 {
		return requests, errs.Newf(errs.CodeStateInconsistency,
			"withdraw request %s already exists", req.RequestID)
	}

	next := make([]model.WithdrawalRequest, len(requests), len(requests)+1)
	copy(next, requests)
	return append(next, req), nil
}

// Reconcile 用重新拉取的列表替换本地列表，对双方都存在的请求保持完成状态与票数的单调性
func Reconcile(local, fetched []model.WithdrawalRequest) []model.WithdrawalRequest {
	known := make(map[string]model.WithdrawalRequest, len(local))
	for _, req := range local {
		known[req.RequestID] = req
	}

	next := make([]model.WithdrawalRequest, 0, len(fetched))
	for _, req := range fetched {
		if prev, ok := known[req.RequestID]; ok {
			if prev.IsCompleted() {
				req.Status = model.WithdrawStatusCompleted
			}
			if prev.TotalVote > req.TotalVote {
				req.TotalVote = prev.TotalVote
			}
		}
		next = append(next, req)
	}
	return next
}

func indexOf(requests []model.WithdrawalRequest, requestID string) int {
	for i := range requests {
		if requests[i].RequestID == requestID {
			return i
		}
	}
	return -1
}
