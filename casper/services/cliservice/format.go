package cliservice

import (
	"fmt"
	"strings"

	"github.com/casper-ecosystem/casper-client-go/casper/client"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
	"github.com/shopspring/decimal"
)

// motesPerCSPRExp is the decimal exponent of one mote.
const motesPerCSPRExp = -9

// FormatMotes renders an amount of motes in CSPR, e.g. "2.5 CSPR".
func FormatMotes(motes types.U512) string {
	return decimal.NewFromBigInt(motes.Big(), motesPerCSPRExp).String() + " CSPR"
}

// FormatExecution summarizes the execution results of a deploy, one line per block.
func FormatExecution(res *client.GetDeployResult) string {
	if len(res.ExecutionResults) == 0 {
		return "Not executed yet"
	}

	var sb strings.Builder
	for _, r := range res.ExecutionResults {
		outcome, ok := r.Outcome()
		if outcome == nil {
			fmt.Fprintf(&sb, "Block %s: unknown result\n", r.BlockHash)
			continue
		}
		if ok {
			fmt.Fprintf(&sb, "Block %s: success, cost %s\n", r.BlockHash, FormatMotes(outcome.Cost))
		} else {
			fmt.Fprintf(&sb, "Block %s: failure (%s), cost %s\n", r.BlockHash, outcome.ErrorMessage, FormatMotes(outcome.Cost))
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
