package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stefanpenner/receipt/pkg/ledger"
	"github.com/stefanpenner/receipt/pkg/session"
)

const currency = "¥"

// simulation is the outcome of committing a run of whole work days.
type simulation struct {
	Days    []ledger.Commit `json:"days"`
	Final   ledger.Snapshot `json:"final"`
	Savings decimal.Decimal `json:"total_savings"`
}

func simulate(r *session.Runner, days int) simulation {
	var sim simulation
	for i := 0; i < days; i++ {
		r.Start()
		commit, ok := r.Stop()
		if !ok {
			break
		}
		sim.Days = append(sim.Days, commit)
	}
	sim.Final = r.Snapshot()
	sim.Savings = sim.Final.Stats.TotalSavings
	return sim
}

func formatMoney(d decimal.Decimal) string {
	return currency + ledger.FormatMoney(d)
}

// renderReceipt builds a markdown receipt for a simulation.
func renderReceipt(sim simulation) string {
	var b strings.Builder

	b.WriteString("# Salary Receipt\n\n")
	fmt.Fprintf(&b, "Daily target **%s** over **%d** day(s).\n\n", formatMoney(sim.Final.DailyTarget), len(sim.Days))

	b.WriteString("## Days\n\n")
	b.WriteString("| Day | Paid | Completed | Saved |\n")
	b.WriteString("|---|---|---|---|\n")
	for i, c := range sim.Days {
		done := "-"
		if len(c.Completed) > 0 {
			done = strings.Join(c.Completed, ", ")
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i+1, formatMoney(c.Amount), done, formatMoney(c.Leftover))
	}

	b.WriteString("\n## Wishlist\n\n")
	if len(sim.Final.Wishes) == 0 {
		b.WriteString("_No wishes._\n")
	}
	for _, w := range sim.Final.Wishes {
		mark := " "
		if w.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s: %s / %s (%.1f%%)\n", mark, w.Name, formatMoney(w.Paid), formatMoney(w.Price), w.Progress())
	}

	b.WriteString("\n## Totals\n\n")
	fmt.Fprintf(&b, "- Earned this week: %s\n", formatMoney(sim.Final.Stats.EarnedThisWeek))
	fmt.Fprintf(&b, "- Earned this month: %s\n", formatMoney(sim.Final.Stats.EarnedThisMonth))
	fmt.Fprintf(&b, "- Total saved: %s\n", formatMoney(sim.Savings))
	if sim.Final.HasSavingsTarget {
		fmt.Fprintf(&b, "- Savings goal: %s (%.1f%%)\n", formatMoney(*sim.Final.Stats.SavingsGoal), sim.Final.SavingsProgress)
	}

	if w, ok := sim.Final.ActiveWish(); ok {
		fmt.Fprintf(&b, "\nNext up: **%s**, %s to go.\n", w.Name, formatMoney(w.Remaining()))
	} else if len(sim.Final.Wishes) > 0 {
		b.WriteString("\nEvery wish is paid for. New earnings go to savings.\n")
	}
	return b.String()
}
