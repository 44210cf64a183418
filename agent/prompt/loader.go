package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/router.txt
	routerRaw string

	//go:embed template/debt_extractor.txt
	debtExtractorRaw string

	//go:embed template/memory_extractor.txt
	memoryExtractorRaw string

	//go:embed template/advisor.txt
	advisorRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Router          string
	DebtExtractor   string
	MemoryExtractor string
	Advisor         string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
// This is safe to call concurrently; the embed is compile-time, and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Router:          strings.TrimSpace(routerRaw),
		DebtExtractor:   strings.TrimSpace(debtExtractorRaw),
		MemoryExtractor: strings.TrimSpace(memoryExtractorRaw),
		Advisor:         strings.TrimSpace(advisorRaw),
	}
}
