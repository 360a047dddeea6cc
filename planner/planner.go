// Package planner selects which UTXOs to spend for a transfer or
// withdrawal. This is coin selection, not proof construction: it picks
// inputs and reports the resulting fee summary. It is explicitly out of
// the deterministic core's scope (spec §1); fee economics themselves
// are a Non-goal, so FeeSummary here is a passthrough the caller
// populates, not a pricing engine.
package planner

import (
	"fmt"
	"math/big"
	"sort"
)

// Candidate is a spendable UTXO as far as coin selection is concerned:
// just a cid and an amount.
type Candidate struct {
	Cid    uint64
	Amount *big.Int
}

// CoinSelection is the result of greedy input selection.
type CoinSelection struct {
	Selected []Candidate
	Sum      *big.Int
}

// FeeSummary reports the fee breakdown a caller attaches to a plan.
// Fee computation itself lives outside this module (Non-goal: fee
// economics); this is just the carrier struct the planner threads through.
type FeeSummary struct {
	RelayerFee  *big.Int
	ProtocolFee *big.Int
	TotalFee    *big.Int
}

// TransferPlan is the selected inputs plus fee summary for a transfer.
type TransferPlan struct {
	Inputs CoinSelection
	Fees   FeeSummary
}

// WithdrawPlan is the selected input plus fee summary for a withdrawal.
type WithdrawPlan struct {
	Input Candidate
	Fees  FeeSummary
}

// SelectTransferInputs greedily selects UTXOs in descending-amount order,
// up to maxInputs, stopping once the running sum covers required.
func SelectTransferInputs(utxos []Candidate, required *big.Int, maxInputs int) (CoinSelection, error) {
	sorted := make([]Candidate, len(utxos))
	copy(sorted, utxos)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Amount.Cmp(sorted[j].Amount) > 0 })

	selected := make([]Candidate, 0, maxInputs)
	sum := big.NewInt(0)

	for _, u := range sorted {
		if len(selected) >= maxInputs {
			break
		}
		selected = append(selected, u)
		sum = new(big.Int).Add(sum, u.Amount)
		if sum.Cmp(required) >= 0 {
			break
		}
	}

	if sum.Cmp(required) < 0 {
		return CoinSelection{}, fmt.Errorf("insufficient funds: have %s, need %s", sum, required)
	}

	return CoinSelection{Selected: selected, Sum: sum}, nil
}

// SelectWithdrawInput finds the smallest-index UTXO (after sorting
// descending by amount) whose value covers required.
func SelectWithdrawInput(utxos []Candidate, required *big.Int) (Candidate, error) {
	sorted := make([]Candidate, len(utxos))
	copy(sorted, utxos)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Amount.Cmp(sorted[j].Amount) > 0 })

	for _, u := range sorted {
		if u.Amount.Cmp(required) >= 0 {
			return u, nil
		}
	}

	return Candidate{}, fmt.Errorf("no single UTXO covers required amount %s", required)
}
