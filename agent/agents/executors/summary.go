package executors

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	"github.com/omarelhadidy/hesab-agent/agent/format"
	"github.com/omarelhadidy/hesab-agent/agent/memory"
)

// MonthlySummary aggregates the current month's transactions per category.
// It is fully deterministic; no model call is involved.
type MonthlySummary struct {
	memories memory.Store
}

func NewMonthlySummary(memories memory.Store) *MonthlySummary {
	return &MonthlySummary{memories: memories}
}

func (s *MonthlySummary) Execute(ctx context.Context, req contractx.ExecutorRequest) (contractx.ExecutorResponse, error) {
	ns := memory.Namespace{AssistantType: req.AssistantType, UserID: req.UserID}
	records, err := s.memories.List(ctx, ns, memory.TypeTransactions)
	if err != nil {
		return contractx.ExecutorResponse{}, fmt.Errorf("load transactions: %w", err)
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	monthPrefix := now.Format("2006-01")

	var income, expenses float64
	byCategory := map[string]float64{}
	currency := "EGP"
	count := 0

	for _, rec := range records {
		date, _ := rec.Value["date"].(string)
		if !strings.HasPrefix(date, monthPrefix) {
			continue
		}
		amount, ok := rec.Value["amount"].(float64)
		if !ok {
			continue
		}
		count++
		switch rec.Value["transaction_type"] {
		case "income":
			income += amount
		default:
			expenses += amount
			category, _ := rec.Value["category"].(string)
			if category == "" {
				category = "uncategorized"
			}
			byCategory[category] += amount
		}
	}

	if count == 0 {
		return contractx.ExecutorResponse{
			Reply: fmt.Sprintf("No transactions recorded for %s yet. Tell me about a purchase or income and I'll track it.", now.Format("January 2006")),
		}, nil
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if byCategory[categories[i]] != byCategory[categories[j]] {
			return byCategory[categories[i]] > byCategory[categories[j]]
		}
		return categories[i] < categories[j]
	})

	var b strings.Builder
	fmt.Fprintf(&b, "## %s Summary\n\n", now.Format("January 2006"))
	fmt.Fprintf(&b, "- Income: **%s**\n", format.MoneyWithCurrency(income, currency))
	fmt.Fprintf(&b, "- Expenses: **%s**\n", format.MoneyWithCurrency(expenses, currency))
	fmt.Fprintf(&b, "- Net: **%s**\n", format.MoneyWithCurrency(income-expenses, currency))

	if len(categories) > 0 {
		b.WriteString("\n**Spending by category:**\n\n")
		for _, category := range categories {
			fmt.Fprintf(&b, "- %s: %s\n", category, format.MoneyWithCurrency(byCategory[category], currency))
		}
	}

	return contractx.ExecutorResponse{Reply: b.String()}, nil
}
