package enums

import "fmt"

// CardType is the brand the payment screen renders for a saved card.
type CardType string

const (
	CardTypeVisa       CardType = "visa"
	CardTypeMastercard CardType = "mastercard"
)

var validCardTypes = []CardType{
	CardTypeVisa,
	CardTypeMastercard,
}

// String implements fmt.Stringer.
func (c CardType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CardType.
func (c CardType) IsValid() bool {
	for _, candidate := range validCardTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCardType converts raw input into a CardType.
func ParseCardType(value string) (CardType, error) {
	for _, candidate := range validCardTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid card type %q", value)
}

// CardTypeForNumber derives the brand from the leading digit, the same rule the
// payment screen applies: 4 is visa, 5 is mastercard.
func CardTypeForNumber(number string) (CardType, error) {
	if number == "" {
		return "", fmt.Errorf("card number is required")
	}
	switch number[0] {
	case '4':
		return CardTypeVisa, nil
	case '5':
		return CardTypeMastercard, nil
	}
	return "", fmt.Errorf("unsupported card number prefix %q", number[:1])
}
