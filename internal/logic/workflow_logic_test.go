package logic

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/blues/crowdmint/internal/errs"
	"github.com/blues/crowdmint/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	campaignAddr = "0xa16E02E87b7454126E5E10d957A927A7F5B5d2be"
	creator      = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	backer       = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

func TestContribute(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("Contribute", mock.Anything, model.ContributeCall{
		ContractAddress: campaignAddr,
		Amount:          big.NewInt(15e17),
		Account:         backer,
	}).Return(nil).Once()

	w := NewWorkflowLogic(ledger)
	result, err := w.Contribute(context.Background(), campaignAddr, "1.5", "0.5", backer)
	require.NoError(t, err)
	assert.Equal(t, "1.5", result.Amount)
	assert.Equal(t, "1500000000000000000", result.AmountWei)
	assert.Equal(t, backer, result.Account)
	ledger.AssertExpectations(t)
}

func TestContribute_EqualToMinimum(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("Contribute", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := NewWorkflowLogic(ledger).Contribute(context.Background(), campaignAddr, "0.50", "0.5", backer)
	require.NoError(t, err)
	ledger.AssertExpectations(t)
}

func TestContribute_BelowMinimum(t *testing.T) {
	for _, amount := range []string{"0.4", "", "abc", "NaN", "-1"} {
		t.Run(amount, func(t *testing.T) {
			ledger := new(mockLedger)
			_, err := NewWorkflowLogic(ledger).Contribute(context.Background(), campaignAddr, amount, "0.5", backer)
			assert.ErrorIs(t, err, errs.ErrBelowMinimum)
			ledger.AssertNotCalled(t, "Contribute", mock.Anything, mock.Anything)
		})
	}
}

func TestContribute_ExtremeExponent(t *testing.T) {
	for _, amount := range []string{"1e-20000000", "1e20000000"} {
		t.Run(amount, func(t *testing.T) {
			ledger := new(mockLedger)
			start := time.Now()
			_, err := NewWorkflowLogic(ledger).Contribute(context.Background(), campaignAddr, amount, "0.01", backer)
			assert.ErrorIs(t, err, errs.ErrBelowMinimum)
			assert.Less(t, time.Since(start), time.Second)
			ledger.AssertNotCalled(t, "Contribute", mock.Anything, mock.Anything)
		})
	}

	_, err := NewWorkflowLogic(new(mockLedger)).RequestWithdrawal(context.Background(), campaignAddr, "1e20000000", creator)
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)
}

func TestContribute_LedgerFailure(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("Contribute", mock.Anything, mock.Anything).
		Return(errors.New("execution reverted: Crowdfunding is over")).Once()

	_, err := NewWorkflowLogic(ledger).Contribute(context.Background(), campaignAddr, "1", "0.5", backer)
	assert.ErrorIs(t, err, errs.ErrContributionFailed)
	assert.Equal(t, "execution reverted: Crowdfunding is over", errs.MessageOf(err))
}

func TestRequestWithdrawal(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("CreateWithdrawRequest", mock.Anything, campaignAddr, model.WithdrawRequestCall{
		Description: "2.5 ETH requested for withdraw",
		Amount:      big.NewInt(25e17),
		Recipient:   creator,
		Account:     creator,
	}).Return(&model.RawWithdrawalRequest{
		RequestID:   big.NewInt(0),
		Description: "2.5 ETH requested for withdraw",
		Amount:      big.NewInt(25e17),
		NoOfVotes:   big.NewInt(0),
		Recipient:   creator,
	}, nil).Once()

	req, err := NewWorkflowLogic(ledger).RequestWithdrawal(context.Background(), campaignAddr, "2.50", creator)
	require.NoError(t, err)
	assert.Equal(t, "0", req.RequestID)
	assert.Equal(t, "2.5", req.Amount)
	assert.Equal(t, creator, req.Recipient)
	assert.Equal(t, model.WithdrawStatusPending, req.Status)
	ledger.AssertExpectations(t)
}

func TestRequestWithdrawal_InvalidAmount(t *testing.T) {
	for _, amount := range []string{"0", "-2", "", "x"} {
		t.Run(amount, func(t *testing.T) {
			ledger := new(mockLedger)
			_, err := NewWorkflowLogic(ledger).RequestWithdrawal(context.Background(), campaignAddr, amount, creator)
			assert.ErrorIs(t, err, errs.ErrInvalidAmount)
			ledger.AssertNotCalled(t, "CreateWithdrawRequest", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRequestWithdrawal_LedgerFailure(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("CreateWithdrawRequest", mock.Anything, campaignAddr, mock.Anything).
		Return(nil, errors.New("Only manager can take this action")).Once()

	_, err := NewWorkflowLogic(ledger).RequestWithdrawal(context.Background(), campaignAddr, "1", backer)
	assert.ErrorIs(t, err, errs.ErrWithdrawRequestFailed)
	assert.Equal(t, "Only manager can take this action", errs.MessageOf(err))
}

func TestVote(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("VoteWithdrawRequest", mock.Anything, model.VoteCall{
		ContractAddress: campaignAddr, RequestID: "2", Account: backer,
	}).Return(nil).Once()

	patch, err := NewWorkflowLogic(ledger).Vote(context.Background(), campaignAddr, "2", backer)
	require.NoError(t, err)
	assert.Equal(t, model.Patch{RequestID: "2", Kind: model.PatchVote}, patch)
}

func TestVote_Failures(t *testing.T) {
	ledger := new(mockLedger)
	_, err := NewWorkflowLogic(ledger).Vote(context.Background(), campaignAddr, "", backer)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
	ledger.AssertNotCalled(t, "VoteWithdrawRequest", mock.Anything, mock.Anything)

	ledger.On("VoteWithdrawRequest", mock.Anything, mock.Anything).
		Return(errors.New("You already voted!")).Once()
	_, err = NewWorkflowLogic(ledger).Vote(context.Background(), campaignAddr, "0", backer)
	assert.ErrorIs(t, err, errs.ErrVoteFailed)
	assert.Equal(t, "You already voted!", errs.MessageOf(err))
}

func TestExecuteWithdrawal(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("WithdrawAmount", mock.Anything, model.WithdrawCall{
		ContractAddress: campaignAddr, RequestID: "1", Account: creator, Amount: big.NewInt(1e18),
	}).Return(nil).Once()

	patch, err := NewWorkflowLogic(ledger).ExecuteWithdrawal(context.Background(), WithdrawInput{
		CampaignAddress: campaignAddr,
		RequestID:       "1",
		Account:         creator,
		Amount:          "1000000000000000000",
		Recipient:       "0xF39FD6E51AAD88F6F4CE6AB8827279CFFFB92266",
	})
	require.NoError(t, err)
	assert.Equal(t, model.Patch{RequestID: "1", Kind: model.PatchComplete}, patch)
	ledger.AssertExpectations(t)
}

func TestExecuteWithdrawal_NotRecipient(t *testing.T) {
	ledger := new(mockLedger)
	_, err := NewWorkflowLogic(ledger).ExecuteWithdrawal(context.Background(), WithdrawInput{
		CampaignAddress: campaignAddr, RequestID: "1", Account: backer, Recipient: creator,
	})
	assert.ErrorIs(t, err, errs.ErrNotRecipient)
	ledger.AssertNotCalled(t, "WithdrawAmount", mock.Anything, mock.Anything)
}

func TestExecuteWithdrawal_LedgerFailure(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("WithdrawAmount", mock.Anything, mock.Anything).
		Return(errors.New("Only manager can take this action")).Once()

	_, err := NewWorkflowLogic(ledger).ExecuteWithdrawal(context.Background(), WithdrawInput{
		CampaignAddress: campaignAddr, RequestID: "1", Account: creator, Recipient: creator,
	})
	assert.ErrorIs(t, err, errs.ErrWithdrawFailed)
}
