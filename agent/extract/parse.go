package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
)

// DecodeLoose parses a JSON object out of raw model output. Oracle output
// is untrusted: code fences are stripped, surrounding prose is sliced away,
// and a repair pass handles the usual truncation and quoting defects before
// the payload is rejected.
func DecodeLoose(content string, v any) error {
	payload := CleanPayload(content)
	if payload == "" {
		return fmt.Errorf("%w: no JSON object in model output", contractx.ErrSchemaViolation)
	}

	if err := json.Unmarshal([]byte(payload), v); err == nil {
		return nil
	}

	repaired, err := jsonrepair.RepairJSON(payload)
	if err != nil {
		return fmt.Errorf("%w: repair JSON: %v", contractx.ErrSchemaViolation, err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("%w: decode repaired JSON: %v", contractx.ErrSchemaViolation, err)
	}
	return nil
}

// CleanPayload strips markdown fences and slices out the outermost JSON
// object. A missing closing brace keeps the tail intact so the repair pass
// can close the object. Returns "" when no opening brace is found.
func CleanPayload(content string) string {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(cleaned, "}")
	if end < start {
		return cleaned[start:]
	}
	return cleaned[start : end+1]
}
