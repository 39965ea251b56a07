package card

import (
	"sort"
	"strings"
)

// bankCards is the known bank-to-card mapping. Card creation and edits
// validate against it; statement extraction picks its pattern set by
// bank name.
var bankCards = map[string][]string{
	"HDFC":  {"Millennia", "MoneyBack", "Regalia", "Diners Club Black"},
	"ICICI": {"Amazon Pay", "Coral", "Sapphiro", "Platinum Chip"},
	"SBI":   {"SimplyCLICK", "SimplySAVE", "Elite", "Cashback"},
	"Axis":  {"Flipkart", "ACE", "Magnus", "Neo"},
	"Amex":  {"Membership Rewards", "Platinum Travel", "SmartEarn"},
}

// Banks returns the known bank names, sorted.
func Banks() []string {
	names := make([]string, 0, len(bankCards))
	for name := range bankCards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CardsForBank returns the card products offered by a bank, or nil for
// an unknown bank.
func CardsForBank(bank string) []string {
	for name, cards := range bankCards {
		if strings.EqualFold(name, bank) {
			out := make([]string, len(cards))
			copy(out, cards)
			return out
		}
	}
	return nil
}

// ValidateProduct checks that the bank is known and that the card name
// belongs to the bank's product list. Matching is case-insensitive.
func ValidateProduct(bank, cardName string) error {
	cards := CardsForBank(bank)
	if cards == nil {
		return ErrUnknownBank
	}
	for _, name := range cards {
		if strings.EqualFold(name, cardName) {
			return nil
		}
	}
	return ErrCardNotOffered
}
