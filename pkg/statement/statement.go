// Package statement extracts billing-statement fields from raw bank
// email bodies. Extraction is best effort: every extractor returns a
// Statement, and fields it cannot find stay zero / empty. Callers must
// treat a zero amount or empty due date as unknown, never as a real
// statement value. The patterns are tied to exact provider markup and
// will quietly stop matching when a bank changes its template.
package statement

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Statement holds the fields extracted from one billing email.
type Statement struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	MinimumDue  decimal.Decimal `json:"minAmount"`
	DueDate     string          `json:"dueDate"`
}

// Empty reports whether nothing usable was extracted.
func (s Statement) Empty() bool {
	return s.TotalAmount.IsZero() && s.MinimumDue.IsZero() && s.DueDate == ""
}

// Extractor pulls statement fields out of an email body. Implementations
// never fail; unmatched fields are left at their zero values.
type Extractor interface {
	Extract(body string) Statement
}

// extractors maps a lowercased bank name to its pattern set. New
// provider formats register here without touching callers.
var extractors = map[string]Extractor{
	"hdfc":  tableExtractor{},
	"icici": labelExtractor{},
	"axis":  drSuffixExtractor{},
}

// For returns the extractor for a bank. Unknown banks get a fallback
// that tries every known pattern set and keeps the first hit.
func For(bank string) Extractor {
	if e, ok := extractors[strings.ToLower(bank)]; ok {
		return e
	}
	return fallbackExtractor{}
}

// Extract runs the bank's pattern set against the email body.
func Extract(bank, body string) Statement {
	return For(bank).Extract(body)
}

// fallbackExtractor tries each known pattern set in a fixed order and
// returns the first non-empty result.
type fallbackExtractor struct{}

func (fallbackExtractor) Extract(body string) Statement {
	for _, e := range []Extractor{tableExtractor{}, labelExtractor{}, drSuffixExtractor{}} {
		if s := e.Extract(body); !s.Empty() {
			return s
		}
	}
	return Statement{}
}

var amountCleaner = regexp.MustCompile(`[^0-9.]`)

// parseAmount turns a matched amount string ("Rs. 12,345.67") into a
// decimal. Anything unparseable comes back as zero.
func parseAmount(raw string) decimal.Decimal {
	cleaned := amountCleaner.ReplaceAllString(raw, "")
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

var (
	slashDate = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	dashDate  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// normalizeDate converts a slash-delimited DD/MM/YYYY date to
// dash-delimited YYYY-MM-DD. Dates already in that form pass through;
// anything else is unknown and becomes the empty string.
func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if dashDate.MatchString(raw) {
		return raw
	}
	if m := slashDate.FindStringSubmatch(raw); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1]
	}
	return ""
}
