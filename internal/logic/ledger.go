package logic

import (
	"context"

	"github.com/blues/crowdmint/internal/model"
)

// Ledger 外部合约接口，金额均为 wei
type Ledger interface {
	LoadAccount(ctx context.Context) (string, error)
	Contribute(ctx context.Context, call model.ContributeCall) error
	CreateWithdrawRequest(ctx context.Context, contractAddress string, call model.WithdrawRequestCall) (*model.RawWithdrawalRequest, error)
	VoteWithdrawRequest(ctx context.Context, call model.VoteCall) error
	WithdrawAmount(ctx context.Context, call model.WithdrawCall) error
	GetMyContributionList(ctx context.Context, account string) ([]model.ContributionEvent, error)

	ListCampaignAddresses(ctx context.Context) ([]string, error)
	GetCampaign(ctx context.Context, address string) (*model.RawCampaign, error)
	GetWithdrawRequests(ctx context.Context, address string) ([]model.RawWithdrawalRequest, error)
	GetContributors(ctx context.Context, address string) ([]model.ContributionEvent, error)
	StartFundraising(ctx context.Context, call model.FundraisingCall) (string, error)
}
