package statement

import "regexp"

// tableExtractor handles the generic HTML-table layout: each field label
// sits in one <td> and its value in the next cell.
type tableExtractor struct{}

var (
	tableTotal = regexp.MustCompile(
		`(?is)<td[^>]*>\s*Total\s+Amount\s+Due\s*:?\s*</td>\s*<td[^>]*>\s*(?:Rs\.?|INR|₹)?\s*([0-9,]+(?:\.[0-9]{1,2})?)`)
	tableMin = regexp.MustCompile(
		`(?is)<td[^>]*>\s*Minimum\s+Amount\s+Due\s*:?\s*</td>\s*<td[^>]*>\s*(?:Rs\.?|INR|₹)?\s*([0-9,]+(?:\.[0-9]{1,2})?)`)
	tableDue = regexp.MustCompile(
		`(?is)<td[^>]*>\s*(?:Payment\s+)?Due\s+Date\s*:?\s*</td>\s*<td[^>]*>\s*(\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4})`)
)

func (tableExtractor) Extract(body string) Statement {
	var s Statement
	if m := tableTotal.FindStringSubmatch(body); m != nil {
		s.TotalAmount = parseAmount(m[1])
	}
	if m := tableMin.FindStringSubmatch(body); m != nil {
		s.MinimumDue = parseAmount(m[1])
	}
	if m := tableDue.FindStringSubmatch(body); m != nil {
		s.DueDate = normalizeDate(m[1])
	}
	return s
}

// labelExtractor handles the labeled-cell layout: plain-text labels
// followed by the value, with optional markup in between.
type labelExtractor struct{}

var (
	labelTotal = regexp.MustCompile(
		`(?is)Total\s+Amount\s+Due\s*(?:</[^>]+>|<[^>]+>|[:\s])*\s*(?:Rs\.?|INR|₹)?\s*([0-9,]+(?:\.[0-9]{1,2})?)`)
	labelMin = regexp.MustCompile(
		`(?is)Minimum\s+(?:Amount\s+)?Due\s*(?:</[^>]+>|<[^>]+>|[:\s])*\s*(?:Rs\.?|INR|₹)?\s*([0-9,]+(?:\.[0-9]{1,2})?)`)
	labelDue = regexp.MustCompile(
		`(?is)Due\s+Date\s*(?:</[^>]+>|<[^>]+>|[:\s])*\s*(\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4})`)
)

func (labelExtractor) Extract(body string) Statement {
	var s Statement
	if m := labelTotal.FindStringSubmatch(body); m != nil {
		s.TotalAmount = parseAmount(m[1])
	}
	if m := labelMin.FindStringSubmatch(body); m != nil {
		s.MinimumDue = parseAmount(m[1])
	}
	if m := labelDue.FindStringSubmatch(body); m != nil {
		s.DueDate = normalizeDate(m[1])
	}
	return s
}

// drSuffixExtractor handles statements that print amounts with a "Dr"
// debit suffix and slash-delimited dates. The first Dr amount is the
// statement total, the second the minimum due.
type drSuffixExtractor struct{}

var (
	drAmount = regexp.MustCompile(`([0-9,]+(?:\.[0-9]{1,2})?)\s*Dr\b`)
	drDue    = regexp.MustCompile(`(?i)(?:due\s+(?:date|by|on))\D{0,20}(\d{2}/\d{2}/\d{4})`)
)

func (drSuffixExtractor) Extract(body string) Statement {
	var s Statement
	amounts := drAmount.FindAllStringSubmatch(body, 2)
	if len(amounts) > 0 {
		s.TotalAmount = parseAmount(amounts[0][1])
	}
	if len(amounts) > 1 {
		s.MinimumDue = parseAmount(amounts[1][1])
	}
	if m := drDue.FindStringSubmatch(body); m != nil {
		s.DueDate = normalizeDate(m[1])
	}
	return s
}
