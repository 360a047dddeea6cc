package planner_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kysee/ocash-core/planner"
)

func candidates() []planner.Candidate {
	return []planner.Candidate{
		{Cid: 0, Amount: big.NewInt(100)},
		{Cid: 1, Amount: big.NewInt(500)},
		{Cid: 2, Amount: big.NewInt(50)},
		{Cid: 3, Amount: big.NewInt(200)},
	}
}

func TestSelectTransferInputsGreedyDescending(t *testing.T) {
	sel, err := planner.SelectTransferInputs(candidates(), big.NewInt(600), 3)
	require.NoError(t, err)

	require.Equal(t, uint64(1), sel.Selected[0].Cid)
	require.True(t, sel.Sum.Cmp(big.NewInt(600)) >= 0)
}

func TestSelectTransferInputsInsufficientFunds(t *testing.T) {
	_, err := planner.SelectTransferInputs(candidates(), big.NewInt(10000), 4)
	require.Error(t, err)
}

func TestSelectTransferInputsRespectsMaxInputs(t *testing.T) {
	_, err := planner.SelectTransferInputs(candidates(), big.NewInt(850), 1)
	require.Error(t, err)
}

func TestSelectWithdrawInputFindsSmallestSufficient(t *testing.T) {
	got, err := planner.SelectWithdrawInput(candidates(), big.NewInt(150))
	require.NoError(t, err)
	require.Equal(t, uint64(3), got.Cid)
}

func TestSelectWithdrawInputNoneSufficient(t *testing.T) {
	_, err := planner.SelectWithdrawInput(candidates(), big.NewInt(10000))
	require.Error(t, err)
}
