package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"

	"github.com/ordersnap/backend/internal/domain"
)

// Package-level compiled regex pattern for performance
var nonWordRegex = regexp.MustCompile(`[^\p{L}\p{N}]+`)

const (
	// DefaultMinConfidence tolerates roughly 40% divergence between request and title
	DefaultMinConfidence = 60.0

	productCoverageWeight = 0.8 // Share of request tokens found in the title
	titleCoverageWeight   = 0.2 // Share of title tokens found in the request
	tokenMatchFloor       = 0.5 // Token similarity below this counts as no match
	tokenHitThreshold     = 0.75
	substringMatchBonus   = 10.0
	minSubstringLength    = 3
	maxInexactScore       = 99.0 // Only identical names reach 100
)

// stopWords never contribute to token coverage
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "for": true, "with": true, "in": true, "on": true,
}

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	MinConfidenceThreshold float64
	EnableDebugLogging     bool
	Logger                 *zap.Logger
}

// MatchingService fuzzy-matches product requests against a catalog
type MatchingService struct {
	minConfidenceThreshold float64
	enableDebugLogging     bool
	logger                 *zap.Logger
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig) *MatchingService {
	threshold := config.MinConfidenceThreshold
	if threshold <= 0 {
		threshold = DefaultMinConfidence
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &MatchingService{
		minConfidenceThreshold: threshold,
		enableDebugLogging:     config.EnableDebugLogging,
		logger:                 logger,
	}
}

// Match resolves every request independently against the catalog. A product
// chosen for one request stays available for the others. Neither input is modified.
func (s *MatchingService) Match(requests []domain.ProductRequest, catalog []domain.CatalogProduct) []domain.MatchResult {
	results := make([]domain.MatchResult, len(requests))
	for i, req := range requests {
		results[i] = domain.MatchResult{
			Requested: req,
			Matched:   s.FindBestMatch(req, catalog),
		}
	}
	return results
}

// FindBestMatch returns the first variant of the highest scoring product, or
// nil when nothing clears the confidence threshold. Ties go to the earlier
// catalog entry.
//
// The first variant is always chosen regardless of its title or price.
func (s *MatchingService) FindBestMatch(request domain.ProductRequest, catalog []domain.CatalogProduct) *domain.MatchedVariant {
	if strings.TrimSpace(request.Name) == "" || len(catalog) == 0 {
		return nil
	}

	bestIdx := -1
	highestScore := -1.0

	for i, product := range catalog {
		if len(product.Variants) == 0 {
			continue
		}

		score, matchedTokens := s.calculateMatchScore(request.Name, product.Title)

		if s.enableDebugLogging {
			s.logger.Debug("match candidate",
				zap.String("request", request.Name),
				zap.String("title", product.Title),
				zap.Float64("score", score),
				zap.Strings("matched_tokens", matchedTokens),
			)
		}

		if score > highestScore {
			highestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 || highestScore < s.minConfidenceThreshold {
		if s.enableDebugLogging {
			s.logger.Debug("no match above threshold",
				zap.String("request", request.Name),
				zap.Float64("best_score", highestScore),
				zap.Float64("threshold", s.minConfidenceThreshold),
			)
		}
		return nil
	}

	product := catalog[bestIdx]
	variant := product.Variants[0]

	return &domain.MatchedVariant{
		ProductTitle: product.Title,
		VariantID:    variant.ID,
		Price:        variant.Price,
		Quantity:     request.Quantity,
		Score:        highestScore,
	}
}

// calculateMatchScore computes the similarity between a requested name and a
// catalog title as the larger of:
//   - whole-string similarity (1 - edit distance / longer length)
//   - token coverage: each request token's best fuzzy hit among title tokens
//     (weighted 80%) plus the share of title tokens hit (20%)
//
// A substring bonus is added when the normalized request appears inside the title.
// Returns the score (0-100) and the title tokens that were hit.
func (s *MatchingService) calculateMatchScore(requested, title string) (float64, []string) {
	req := normalizeName(requested)
	ttl := normalizeName(title)

	if req == "" || ttl == "" {
		return 0, nil
	}
	if req == ttl {
		return 100, tokenize(ttl)
	}

	whole := similarity(req, ttl)

	reqTokens := tokenize(req)
	titleTokens := tokenize(ttl)

	tokenScore := 0.0
	var matchedTokens []string
	if len(reqTokens) > 0 && len(titleTokens) > 0 {
		coverage := 0.0
		hit := make([]bool, len(titleTokens))

		for _, rt := range reqTokens {
			best := 0.0
			for j, tt := range titleTokens {
				sim := similarity(rt, tt)
				if sim >= tokenHitThreshold {
					hit[j] = true
				}
				if sim > best {
					best = sim
				}
			}
			if best >= tokenMatchFloor {
				coverage += best
			}
		}

		titleHits := 0
		for j, ok := range hit {
			if ok {
				titleHits++
				matchedTokens = append(matchedTokens, titleTokens[j])
			}
		}

		tokenScore = coverage/float64(len(reqTokens))*productCoverageWeight +
			float64(titleHits)/float64(len(titleTokens))*titleCoverageWeight
	}

	score := max(whole, tokenScore) * 100

	if utf8.RuneCountInString(req) >= minSubstringLength && strings.Contains(ttl, req) {
		score += substringMatchBonus
	}

	if score > maxInexactScore {
		score = maxInexactScore
	}

	return score, matchedTokens
}

// normalizeName lowercases and replaces punctuation runs with single spaces
func normalizeName(s string) string {
	s = nonWordRegex.ReplaceAllString(strings.ToLower(s), " ")
	return strings.Join(strings.Fields(s), " ")
}

// tokenize splits a normalized name, dropping stop words. If only stop words
// remain the full token list is returned.
func tokenize(s string) []string {
	words := strings.Fields(s)

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if stopWords[word] {
			continue
		}
		tokens = append(tokens, word)
	}

	if len(tokens) == 0 {
		return words
	}
	return tokens
}

// similarity returns 1 - levenshtein(a, b) / max(len(a), len(b)) on runes
func similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
