package statement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const hdfcBody = `
<html><body>
<table>
<tr><td>Total Amount Due</td><td>Rs. 12,345.67</td></tr>
<tr><td>Minimum Amount Due</td><td>Rs. 620.00</td></tr>
<tr><td>Payment Due Date</td><td>2025-03-05</td></tr>
</table>
</body></html>`

const iciciBody = `
Dear Customer,
Your statement is ready.
Total Amount Due: INR 8,400.50
Minimum Due: INR 420
Due Date: 15/03/2025
`

const axisBody = `
Statement summary for your card ending 4321
9,999.99 Dr
500.00 Dr
Please pay by due date 20/03/2025 to avoid charges.
`

func TestExtractTableLayout(t *testing.T) {
	s := Extract("HDFC", hdfcBody)
	assert.True(t, s.TotalAmount.Equal(decimal.RequireFromString("12345.67")))
	assert.True(t, s.MinimumDue.Equal(decimal.RequireFromString("620.00")))
	assert.Equal(t, "2025-03-05", s.DueDate)
}

func TestExtractLabelLayout(t *testing.T) {
	s := Extract("ICICI", iciciBody)
	assert.True(t, s.TotalAmount.Equal(decimal.RequireFromString("8400.50")))
	assert.True(t, s.MinimumDue.Equal(decimal.NewFromInt(420)))
	assert.Equal(t, "2025-03-15", s.DueDate)
}

func TestExtractDrSuffixLayout(t *testing.T) {
	s := Extract("Axis", axisBody)
	assert.True(t, s.TotalAmount.Equal(decimal.RequireFromString("9999.99")))
	assert.True(t, s.MinimumDue.Equal(decimal.RequireFromString("500.00")))
	assert.Equal(t, "2025-03-20", s.DueDate)
}

// No recognizable pattern yields zeros and an empty date, never an
// error.
func TestExtractNoMatch(t *testing.T) {
	s := Extract("HDFC", "hello, nothing statement-like here")
	assert.True(t, s.TotalAmount.IsZero())
	assert.True(t, s.MinimumDue.IsZero())
	assert.Empty(t, s.DueDate)
	assert.True(t, s.Empty())
}

func TestExtractEmptyBody(t *testing.T) {
	s := Extract("Axis", "")
	assert.True(t, s.Empty())
}

// Fields match independently: a partial hit keeps what it found.
func TestExtractPartialMatch(t *testing.T) {
	body := "<td>Total Amount Due</td><td>Rs. 999</td>"
	s := Extract("HDFC", body)
	assert.True(t, s.TotalAmount.Equal(decimal.NewFromInt(999)))
	assert.True(t, s.MinimumDue.IsZero())
	assert.Empty(t, s.DueDate)
	assert.False(t, s.Empty())
}

// Unknown banks fall back to trying every known pattern set.
func TestExtractUnknownBankFallback(t *testing.T) {
	s := Extract("SBI", iciciBody)
	assert.True(t, s.TotalAmount.Equal(decimal.RequireFromString("8400.50")))
	assert.Equal(t, "2025-03-15", s.DueDate)
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2025-03-15", normalizeDate("15/03/2025"))
	assert.Equal(t, "2025-03-05", normalizeDate("2025-03-05"))
	assert.Equal(t, "", normalizeDate("March 5th"))
	assert.Equal(t, "", normalizeDate(""))
}

func TestParseAmount(t *testing.T) {
	assert.True(t, parseAmount("Rs. 12,345.67").Equal(decimal.RequireFromString("12345.67")))
	assert.True(t, parseAmount("₹1,000").Equal(decimal.NewFromInt(1000)))
	assert.True(t, parseAmount("garbage").IsZero())
}
