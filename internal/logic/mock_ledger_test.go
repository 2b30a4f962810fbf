package logic

import (
	"context"

	"github.com/blues/crowdmint/internal/model"
	"github.com/stretchr/testify/mock"
)

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) LoadAccount(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockLedger) Contribute(ctx context.Context, call model.ContributeCall) error {
	return m.Called(ctx, call).Error(0)
}

func (m *mockLedger) CreateWithdrawRequest(ctx context.Context, contractAddress string, call model.WithdrawRequestCall) (*model.RawWithdrawalRequest, error) {
	args := m.Called(ctx, contractAddress, call)
	raw, _ := args.Get(0).(*model.RawWithdrawalRequest)
	return raw, args.Error(1)
}

func (m *mockLedger) VoteWithdrawRequest(ctx context.Context, call model.VoteCall) error {
	return m.Called(ctx, call).Error(0)
}

func (m *mockLedger) WithdrawAmount(ctx context.Context, call model.WithdrawCall) error {
	return m.Called(ctx, call).Error(0)
}

func (m *mockLedger) GetMyContributionList(ctx context.Context, account string) ([]model.ContributionEvent, error) {
	args := m.Called(ctx, account)
	events, _ := args.Get(0).([]model.ContributionEvent)
	return events, args.Error(1)
}

func (m *mockLedger) ListCampaignAddresses(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]string)
	return list, args.Error(1)
}

func (m *mockLedger) GetCampaign(ctx context.Context, address string) (*model.RawCampaign, error) {
	args := m.Called(ctx, address)
	raw, _ := args.Get(0).(*model.RawCampaign)
	return raw, args.Error(1)
}

func (m *mockLedger) GetWithdrawRequests(ctx context.Context, address string) ([]model.RawWithdrawalRequest, error) {
	args := m.Called(ctx, address)
	list, _ := args.Get(0).([]model.RawWithdrawalRequest)
	return list, args.Error(1)
}

func (m *mockLedger) GetContributors(ctx context.Context, address string) ([]model.ContributionEvent, error) {
	args := m.Called(ctx, address)
	events, _ := args.Get(0).([]model.ContributionEvent)
	return events, args.Error(1)
}

func (m *mockLedger) StartFundraising(ctx context.Context, call model.FundraisingCall) (string, error) {
	args := m.Called(ctx, call)
	return args.String(0), args.Error(1)
}
