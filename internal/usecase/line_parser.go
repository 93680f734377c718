package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ordersnap/backend/internal/domain"
)

// Compiled patterns for product line parsing, tried in declaration order
var (
	// Splits on newlines (CRLF or LF) and commas
	lineSeparatorPattern = regexp.MustCompile(`\r?\n|,`)

	// "2x Mug", "2 X Mug"
	leadingMultiplierPattern = regexp.MustCompile(`(?i)^(\d+)\s*x\s*(.+)$`)

	// "Mug x2", "Mug X 2"
	trailingMultiplierPattern = regexp.MustCompile(`(?i)^(.+?)\s*x\s*(\d+)$`)

	// "Mug - 3", "Mug: 3"
	suffixQuantityPattern = regexp.MustCompile(`^(.+?)\s*[-:]\s*(\d+)$`)
)

// ParseProductLines turns free-text input into ordered product requests.
// Malformed lines fall back to the whole segment as the name with quantity 1;
// the parser never fails.
func ParseProductLines(text string) []domain.ProductRequest {
	segments := lineSeparatorPattern.Split(text, -1)

	requests := make([]domain.ProductRequest, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		requests = append(requests, parseLine(segment))
	}

	return requests
}

// parseLine classifies a single trimmed, non-empty segment
func parseLine(line string) domain.ProductRequest {
	if m := leadingMultiplierPattern.FindStringSubmatch(line); m != nil {
		if req, ok := newRequest(m[2], m[1]); ok {
			return req
		}
	}

	if m := trailingMultiplierPattern.FindStringSubmatch(line); m != nil {
		if req, ok := newRequest(m[1], m[2]); ok {
			return req
		}
	}

	if m := suffixQuantityPattern.FindStringSubmatch(line); m != nil {
		if req, ok := newRequest(m[1], m[2]); ok {
			return req
		}
	}

	return domain.ProductRequest{Name: line, Quantity: 1}
}

// newRequest builds a request from captured groups. Digit runs that overflow
// an int are rejected so the line degrades to the next pattern.
func newRequest(name, digits string) (domain.ProductRequest, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ProductRequest{}, false
	}

	qty, err := strconv.Atoi(digits)
	if err != nil {
		return domain.ProductRequest{}, false
	}

	return domain.ProductRequest{Name: name, Quantity: ClampQuantity(float64(qty))}, true
}
