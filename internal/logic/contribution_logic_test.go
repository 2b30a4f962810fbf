package logic

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/blues/crowdmint/internal/errs"
	"github.com/blues/crowdmint/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	events   []model.ContributionEvent
	queried  []string
	projects []string
}

func (f *fakeIndex) ListByProject(ctx context.Context, projectAddress string) ([]model.ContributionEvent, error) {
	f.projects = append(f.projects, projectAddress)
	return f.events, nil
}

func (f *fakeIndex) ListByContributor(ctx context.Context, contributor string) ([]model.ContributionEvent, error) {
	f.queried = append(f.queried, contributor)
	return f.events, nil
}

func TestGetMyContributions_FromLedger(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("GetMyContributionList", mock.Anything, backer).Return([]model.ContributionEvent{
		{ProjectAddress: "0xP1", Contributor: backer, Amount: big.NewInt(5e17)},
		{ProjectAddress: "0xP2", Contributor: backer, Amount: ether(2)},
	}, nil)

	list, err := NewContributionLogic(ledger, nil).GetMyContributions(context.Background(), strings.ToLower(backer))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, model.ProjectContribution{ProjectAddress: "0xP1", Contributor: backer, Amount: "0.5"}, list[0])
	assert.Equal(t, "2", list[1].Amount)
}

func TestGetMyContributions_FromIndex(t *testing.T) {
	ledger := new(mockLedger)
	index := &fakeIndex{events: []model.ContributionEvent{
		{ProjectAddress: "0xP1", Contributor: backer, Amount: big.NewInt(1)},
	}}

	list, err := NewContributionLogic(ledger, index).GetMyContributions(context.Background(), backer)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "0.000000000000000001", list[0].Amount)
	assert.Equal(t, []string{backer}, index.queried)
	ledger.AssertNotCalled(t, "GetMyContributionList", mock.Anything, mock.Anything)
}

func TestGetMyContributions_Errors(t *testing.T) {
	ledger := new(mockLedger)
	_, err := NewContributionLogic(ledger, nil).GetMyContributions(context.Background(), "")
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	ledger.On("GetMyContributionList", mock.Anything, backer).Return(nil, errors.New("filter not supported"))
	_, err = NewContributionLogic(ledger, nil).GetMyContributions(context.Background(), backer)
	assert.ErrorIs(t, err, errs.ErrExternalCallFailed)
}

func TestGetContributors(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("GetContributors", mock.Anything, campaignAddr).Return([]model.ContributionEvent{
		{ProjectAddress: campaignAddr, Contributor: backer, Amount: big.NewInt(1e17)},
		{ProjectAddress: campaignAddr, Contributor: creator, Amount: ether(1)},
		{ProjectAddress: campaignAddr, Contributor: backer, Amount: big.NewInt(2e17)},
	}, nil)

	totals, err := NewContributionLogic(ledger, nil).GetContributors(context.Background(), campaignAddr)
	require.NoError(t, err)
	assert.Equal(t, []model.ContributorTotal{
		{Contributor: backer, Amount: "0.3"},
		{Contributor: creator, Amount: "1"},
	}, totals)
}

func TestLoadAccount(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("LoadAccount", mock.Anything).Return(creator, nil)

	account, err := NewContributionLogic(ledger, nil).LoadAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, creator, account)
}

func TestGetContributors_FromIndex(t *testing.T) {
	ledger := new(mockLedger)
	index := &fakeIndex{events: []model.ContributionEvent{
		{ProjectAddress: campaignAddr, Contributor: backer, Amount: big.NewInt(1e17)},
		{ProjectAddress: campaignAddr, Contributor: backer, Amount: big.NewInt(4e17)},
	}}

	totals, err := NewContributionLogic(ledger, index).GetContributors(context.Background(), strings.ToLower(campaignAddr))
	require.NoError(t, err)
	assert.Equal(t, []model.ContributorTotal{{Contributor: backer, Amount: "0.5"}}, totals)
	assert.Equal(t, []string{campaignAddr}, index.projects)
	ledger.AssertNotCalled(t, "GetContributors", mock.Anything, mock.Anything)
}
