package services

import (
	"context"
	"regexp"

	portssvc "github.com/workhive/workhive_backend/internal/core/ports/services"
)

// Keyword tiers for the deterministic risk engine. Scores are additive on a
// 0.2 base and capped at 1.0.
var (
	highRiskPattern   = regexp.MustCompile(`(?i)scam|police|fraud|stolen|lawyer|sue`)
	mediumRiskPattern = regexp.MustCompile(`(?i)refund|late|worst|lying|ignore|money`)
)

const (
	riskBase         = 0.2
	highRiskWeight   = 0.4
	mediumRiskWeight = 0.15
)

type keywordRiskAnalyzer struct{}

// NewKeywordRiskAnalyzer returns the default dispute risk engine: a
// deterministic keyword scorer. It stands where an external model would be
// wired and keeps the chat service independent of any provider.
func NewKeywordRiskAnalyzer() portssvc.RiskAnalyzer {
	return keywordRiskAnalyzer{}
}

var _ portssvc.RiskAnalyzer = keywordRiskAnalyzer{}

func (keywordRiskAnalyzer) Analyze(_ context.Context, transcript, question string) (string, float64, error) {
	text := transcript + "\n" + question
	risk := riskBase
	if highRiskPattern.MatchString(text) {
		risk += highRiskWeight
	}
	if mediumRiskPattern.MatchString(text) {
		risk += mediumRiskWeight
	}
	if risk > 1.0 {
		risk = 1.0
	}

	var reply string
	switch {
	case risk > riskFlagThreshold:
		reply = "This conversation shows signs of a serious dispute. The order has been flagged for review. " +
			"Keep all communication on the platform and avoid sending money outside escrow. " +
			"If you believe you are being defrauded, request a refund of the held escrow now."
	case risk > riskBase:
		reply = "There appears to be some tension on this order. Try agreeing on a concrete revision or a new deadline in writing here. " +
			"Escrowed funds stay protected until both sides are satisfied."
	default:
		reply = "No dispute indicators found. If you have concerns about delivery or payment, raise them in this conversation so both parties have a record."
	}
	return reply, risk, nil
}
