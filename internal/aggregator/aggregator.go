// Package aggregator 将链上贡献事件整理为按项目、按贡献者的展示列表
package aggregator

import (
	"math/big"

	"github.com/blues/crowdmint/internal/model"
	"github.com/blues/crowdmint/internal/unit"
)

// GroupByProject 每个事件一行，保持输入顺序，金额逐条换算
func GroupByProject(events []model.ContributionEvent) []model.ProjectContribution {
	result := make([]model.ProjectContribution, 0, len(events))
	for _, ev := range events {
		result = append(result, model.ProjectContribution{
			ProjectAddress: ev.ProjectAddress,
			Contributor:    ev.Contributor,
			Amount:         unit.FormatBase(ev.Amount),
		})
	}
	return result
}

// GroupByContributor 按贡献者地址（区分大小写）汇总，先以 wei 求和再换算，
// 输出按首次出现的顺序排列
func GroupByContributor(events []model.ContributionEvent) []model.ContributorTotal {
	totals := make(map[string]*big.Int)
	order := make([]string, 0)

	for _, ev := range events {
		sum, ok := totals[ev.Contributor]
		if !ok {
			sum = new(big.Int)
			totals[ev.Contributor] = sum
			order = append(order, ev.Contributor)
		}
		if ev.Amount != nil {
			sum.Add(sum, ev.Amount)
		}
	}

	result := make([]model.ContributorTotal, 0, len(order))
	for _, contributor := range order {
		result = append(result, model.ContributorTotal{
			Contributor: contributor,
			Amount:      unit.FormatBase(totals[contributor]),
		})
	}
	return result
}
