package logic

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/blues/crowdmint/internal/errs"
	"github.com/blues/crowdmint/internal/formatter"
	"github.com/blues/crowdmint/internal/logger"
	"github.com/blues/crowdmint/internal/model"
	"github.com/blues/crowdmint/internal/unit"
	"github.com/panjf2000/ants/v2"
)

// CampaignLogic 项目列表、详情与发起众筹
type CampaignLogic struct {
	ledger Ledger
	pool   *ants.Pool // 协程池
	now    func() time.Time
}

// NewCampaignLogic 创建项目业务逻辑，pool 由调用方负责释放
func NewCampaignLogic(ledger Ledger, pool *ants.Pool) *CampaignLogic {
	return &CampaignLogic{ledger: ledger, pool: pool, now: time.Now}
}

// FundraisingInput 发起众筹参数，金额为展示单位
type FundraisingInput struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	MinContribution string `json:"minContribution"`
	Target          string `json:"target"`
	Deadline        int64  `json:"deadline"` // 毫秒时间戳
	Account         string `json:"account"`
}

// ListCampaigns 并发读取全部项目详情，保持合约返回的顺序；
// 单个项目读取或解析失败时以占位项代替
func (c *CampaignLogic) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	addresses, err := c.ledger.ListCampaignAddresses(ctx)
	if err != nil {
		logger.Error("Failed to list campaigns: %v", err)
		return nil, external(err)
	}

	campaigns := make([]model.Campaign, len(addresses))
	var wg sync.WaitGroup
	for i, address := range addresses {
		i, address := i, address
		wg.Add(1)
		err := c.pool.Submit(func() {
			defer wg.Done()
			campaigns[i] = c.loadCampaign(ctx, address)
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit campaign %s to pool: %v", address, err)
			campaigns[i] = *formatter.FallbackCampaign(address)
		}
	}
	wg.Wait()

	return campaigns, nil
}

func (c *CampaignLogic) loadCampaign(ctx context.Context, address string) model.Campaign {
	raw, err := c.ledger.GetCampaign(ctx, address)
	if err != nil {
		logger.Warn("Failed to load campaign %s: %v", address, err)
		return *formatter.FallbackCampaign(address)
	}
	campaign, err := formatter.FormatCampaign(*raw, address)
	if err != nil {
		logger.Warn("Failed to format campaign %s: %v", address, err)
		return *formatter.FallbackCampaign(address)
	}
	return *campaign
}

// GetCampaign 读取单个项目详情；链上数据无法解析时返回 Available=false 的占位项
func (c *CampaignLogic) GetCampaign(ctx context.Context, address string) (*model.Campaign, error) {
	if address == "" {
		return nil, errs.New(errs.CodeInvalidArgument, "campaign address is required")
	}
	raw, err := c.ledger.GetCampaign(ctx, address)
	if errs.CodeOf(err) == errs.CodeFormatError {
		logger.Warn("Failed to decode campaign %s: %v", address, err)
		return formatter.FallbackCampaign(address), nil
	}
	if err != nil {
		logger.Error("Failed to load campaign %s: %v", address, err)
		return nil, external(err)
	}
	if raw == nil {
		return nil, errs.Newf(errs.CodeNotFound, "campaign %s not found", address)
	}
	campaign, err := formatter.FormatCampaign(*raw, address)
	if err != nil {
		logger.Warn("Failed to format campaign %s: %v", address, err)
		return formatter.FallbackCampaign(address), nil
	}
	return campaign, nil
}

// StartFundraising 发起众筹，返回新项目地址
func (c *CampaignLogic) StartFundraising(ctx context.Context, in FundraisingInput) (string, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return "", errs.New(errs.CodeInvalidArgument, "title and description are required")
	}
	minContribution, err := unit.ToBaseUnit(in.MinContribution)
	if err != nil {
		return "", err
	}
	target, err := unit.ToBaseUnit(in.Target)
	if err != nil {
		return "", err
	}
	if target.Sign() <= 0 {
		return "", errs.InvalidAmount("target must be greater than 0")
	}
	if in.Deadline <= c.now().UnixMilli() {
		return "", errs.New(errs.CodeInvalidArgument, "deadline must be in the future")
	}

	address, err := c.ledger.StartFundraising(ctx, model.FundraisingCall{
		MinContribution: minContribution,
		Deadline:        in.Deadline,
		Target:          target,
		Title:           in.Title,
		Description:     in.Description,
		Account:         in.Account,
	})
	if err != nil {
		logger.Error("Start fundraising %q failed: %v", in.Title, err)
		return "", errs.Wrap(errs.CodeFundraisingFailed, err)
	}

	logger.Info("Started fundraising %q at %s", in.Title, address)
	return address, nil
}

// PoolStatus 协程池状态
func (c *CampaignLogic) PoolStatus() map[string]interface{} {
	return map[string]interface{}{
		"running": c.pool.Running(),
		"free":    c.pool.Free(),
		"cap":     c.pool.Cap(),
	}
}
