// Package format renders computed payoff plans for presentation. The model
// never touches the numbers; it only receives pre-rendered text.
package format

import (
	"fmt"
	"strings"

	"github.com/omarelhadidy/hesab-agent/agent/debtplan"
)

// Markdown renders the full plan: overview, month-by-month table, summary
// and any validation warnings.
func Markdown(plan debtplan.Plan) string {
	currency := currencyOf(plan)

	var b strings.Builder
	fmt.Fprintf(&b, "## 📊 %s\n\n", plan.PlanName)

	b.WriteString("**Plan Overview:**\n\n")
	fmt.Fprintf(&b, "- 💰 Monthly Salary: **%s %s**\n", money0(plan.Salary), currency)
	fmt.Fprintf(&b, "- 📌 Fixed Expenses: **%s %s**\n", money0(plan.FixedExpenses), currency)
	fmt.Fprintf(&b, "- 💳 Initial Debt: **%s %s**\n", money0(plan.InitialDebt), currency)
	fmt.Fprintf(&b, "- 📈 Monthly Interest Rate: **%.2f%%**\n", plan.MonthlyInterestRate*100)
	fmt.Fprintf(&b, "- 💾 Savings Rate: **%.0f%%** of salary\n", plan.SavingsRate*100)
	fmt.Fprintf(&b, "- ⏱️ Plan Duration: **%d months**\n\n", plan.Months)

	if len(plan.OneTimePayments) > 0 {
		b.WriteString("**Scheduled Bonuses/Extra Payments:**\n\n")
		for _, otp := range plan.OneTimePayments {
			desc := otp.Description
			if desc == "" {
				desc = "Extra payment"
			}
			fmt.Fprintf(&b, "- Month %d: **%s %s** (%s)\n", otp.Month, money0(otp.Amount), currency, desc)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Monthly Breakdown\n\n")
	b.WriteString("| Month | Salary | Fixed Exp | Savings | Regular Payment | Bonus/Extra | Total Payment | Interest | Balance |\n")
	b.WriteString("|-------|--------|-----------|---------|-----------------|-------------|---------------|----------|----------|\n")
	for _, row := range plan.MonthlyRows {
		bonus := "— "
		if row.OneTimePayment > 0 {
			bonus = money0(row.OneTimePayment) + " "
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s| **%s** | %.2f | %.2f |\n",
			row.Month,
			money0(row.Salary),
			money0(row.FixedExpenses),
			money0(row.SavingsAmount),
			money0(row.DebtPayment),
			bonus,
			money0(row.TotalPayment),
			row.InterestCharged,
			row.RemainingBalance,
		)
	}

	b.WriteString("\n### 📊 Summary\n\n")
	if plan.IsDebtCleared {
		b.WriteString("✅ **Debt Fully Cleared!**\n\n")
		if plan.MonthsToPayoff != nil {
			fmt.Fprintf(&b, "- 🎯 Paid off in: **%d months** ", *plan.MonthsToPayoff)
			if *plan.MonthsToPayoff < plan.Months {
				fmt.Fprintf(&b, "(ahead of %d-month plan!)", plan.Months)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("⚠️ **Debt Not Fully Cleared**\n\n")
		fmt.Fprintf(&b, "- Remaining balance: **%s %s**\n", money2(plan.FinalBalance), currency)
		if plan.RecommendedPayment != nil {
			fmt.Fprintf(&b, "- 💡 To clear in %d months, increase payment to: **%s %s/month**\n",
				plan.Months, money2(*plan.RecommendedPayment), currency)
		}
	}

	b.WriteString("\n**Financial Results:**\n\n")
	fmt.Fprintf(&b, "- 💰 Total Saved: **%s %s**\n", money0(plan.TotalSaved), currency)
	fmt.Fprintf(&b, "- 📈 Total Interest Paid: **%s %s**\n", money2(plan.TotalInterestPaid), currency)
	fmt.Fprintf(&b, "- 💳 Total Regular Payments: **%s %s**\n", money2(plan.TotalRegularPayments), currency)
	if plan.TotalOneTimePayments > 0 {
		fmt.Fprintf(&b, "- 🎁 Total Bonus/Extra Payments: **%s %s**\n", money0(plan.TotalOneTimePayments), currency)
	}

	if len(plan.ValidationErrors) > 0 {
		b.WriteString("\n### ⚠️ Warnings\n\n")
		for _, violation := range plan.ValidationErrors {
			fmt.Fprintf(&b, "- %s\n", violation)
		}
	}

	b.WriteString("\n---\n")
	fmt.Fprintf(&b, "*Calculated by: %s Strategy*  \n", titleCase(strategyOf(plan)))
	fmt.Fprintf(&b, "*Plan created: %s*\n", createdDateOf(plan))

	return b.String()
}

// Summary is the short conversational rendering used inline in replies.
func Summary(plan debtplan.Plan) string {
	currency := currencyOf(plan)
	monthsActual := plan.Months
	if plan.MonthsToPayoff != nil {
		monthsActual = *plan.MonthsToPayoff
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your %d-month debt payoff plan is ready! ", plan.Months)

	if plan.IsDebtCleared {
		fmt.Fprintf(&b, "Great news: you'll clear the %s %s debt in just **%d months** ",
			money0(plan.InitialDebt), currency, monthsActual)
		if monthsActual < plan.Months {
			b.WriteString("(ahead of schedule!) ")
		}
		fmt.Fprintf(&b, "while saving %.0f%% of your salary. ", plan.SavingsRate*100)
	} else {
		fmt.Fprintf(&b, "With your current budget, you'll reduce the %s %s debt to %s %s. ",
			money0(plan.InitialDebt), currency, money2(plan.FinalBalance), currency)
		if plan.RecommendedPayment != nil {
			fmt.Fprintf(&b, "To fully clear it, consider increasing your monthly payment to %s %s. ",
				money2(*plan.RecommendedPayment), currency)
		}
	}

	fmt.Fprintf(&b, "\n\nYou'll pay %s %s in total interest and save %s %s over the plan period.",
		money2(plan.TotalInterestPaid), currency, money0(plan.TotalSaved), currency)

	if plan.TotalOneTimePayments > 0 {
		fmt.Fprintf(&b, " Your bonus/extra payments of %s %s will significantly accelerate payoff!",
			money0(plan.TotalOneTimePayments), currency)
	}

	return b.String()
}

func currencyOf(plan debtplan.Plan) string {
	if plan.Currency == "" {
		return "EGP"
	}
	return plan.Currency
}

func strategyOf(plan debtplan.Plan) string {
	if plan.PayoffStrategy == "" {
		return "standard"
	}
	return plan.PayoffStrategy
}

func createdDateOf(plan debtplan.Plan) string {
	if plan.CreatedDate == "" {
		return "N/A"
	}
	return plan.CreatedDate
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// MoneyWithCurrency renders an amount with separators and a currency code.
func MoneyWithCurrency(v float64, currency string) string {
	if currency == "" {
		currency = "EGP"
	}
	return money0(v) + " " + currency
}

// money0 renders an amount with thousands separators and no decimals.
func money0(v float64) string {
	return groupThousands(fmt.Sprintf("%.0f", v))
}

// money2 renders an amount with thousands separators and two decimals.
func money2(v float64) string {
	return groupThousands(fmt.Sprintf("%.2f", v))
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
