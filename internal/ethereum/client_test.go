package ethereum

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hardhat 默认账户 #0
const (
	testKey     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func TestNewSigner(t *testing.T) {
	s, err := NewSigner(testKey, 31337)
	require.NoError(t, err)
	assert.Equal(t, testAddress, s.Address())
	assert.True(t, s.Manages(strings.ToLower(testAddress)))
	assert.False(t, s.Manages("0x0000000000000000000000000000000000000001"))
	assert.False(t, s.Manages("not-an-address"))
}

func TestNewSigner_Empty(t *testing.T) {
	s, err := NewSigner("", 1)
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Equal(t, "", s.Address())

	_, err = s.TransactOpts(context.Background(), testAddress, nil)
	assert.Error(t, err)
}

func TestNewSigner_InvalidKey(t *testing.T) {
	_, err := NewSigner("0x1234", 1)
	assert.Error(t, err)
}

func TestTransactOpts(t *testing.T) {
	s, err := NewSigner(testKey, 31337)
	require.NoError(t, err)

	value := big.NewInt(1e18)
	opts, err := s.TransactOpts(context.Background(), testAddress, value)
	require.NoError(t, err)
	assert.Equal(t, testAddress, opts.From.Hex())
	assert.Equal(t, value, opts.Value)

	_, err = s.TransactOpts(context.Background(), "0x0000000000000000000000000000000000000001", nil)
	assert.Error(t, err)
}
