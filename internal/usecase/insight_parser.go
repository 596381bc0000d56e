package usecase

import (
	"strconv"
	"strings"

	"github.com/saleslens/backend/internal/domain"
)

// Labels the prompt instructs the model to anchor each line with. Parsing is
// line-oriented and label-anchored rather than structured decoding because
// the backend's output format is not contractually guaranteed.
const (
	labelProbability   = "deal probability:"
	labelProfitability = "profitability:"
	labelNextStep      = "next step:"
)

// parseInsightReply extracts the three insight fields from the raw model
// reply. The first occurrence of each label wins. A reply missing any label,
// or carrying an unparsable value, yields whatever was found together with
// ErrPartialInsight; nothing is ever fabricated.
func parseInsightReply(content string) (*domain.DealInsight, error) {
	insight := &domain.DealInsight{}
	var haveProbability, haveProfitability, haveNextStep bool

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case !haveProbability && strings.HasPrefix(lower, labelProbability):
			if v, ok := parseProbability(line[len(labelProbability):]); ok {
				insight.DealProbabilityPercent = v
				haveProbability = true
			}
		case !haveProfitability && strings.HasPrefix(lower, labelProfitability):
			if p, ok := domain.ParseProfitability(strings.TrimSpace(line[len(labelProfitability):])); ok {
				insight.Profitability = p
				haveProfitability = true
			}
		case !haveNextStep && strings.HasPrefix(lower, labelNextStep):
			if step := strings.TrimSpace(line[len(labelNextStep):]); step != "" {
				insight.NextStep = step
				haveNextStep = true
			}
		}
	}

	if !haveProbability || !haveProfitability || !haveNextStep {
		return insight, domain.ErrPartialInsight
	}
	return insight, nil
}

// parseProbability reads a percentage value like "72", "72%" or "72.5 %"
func parseProbability(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, "%")
	raw = strings.TrimSpace(raw)

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 100 {
		return 0, false
	}
	return v, true
}
