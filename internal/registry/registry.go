// Package registry validates external payment destinations: ABA routing
// numbers against a known-bank table, and card numbers via the Luhn
// check.
package registry

import (
	"strconv"
	"strings"
)

// banks maps routing numbers to institution names. Transfer requests to
// a routing number outside this table are rejected up front.
var banks = map[string]string{
	"021000021": "JPMorgan Chase",
	"026009593": "Bank of America",
	"121000248": "Wells Fargo",
	"021000089": "Citibank",
	"031101279": "The Bancorp Bank",
	"124303120": "Green Dot Bank",
	"074000010": "PNC Bank",
	"121042882": "Wells Fargo (CA)",
	"011401533": "Citizens Bank",
	"053000196": "Truist Bank",
}

// LookupBank returns the institution for a routing number after checking
// the ABA checksum. ok is false for malformed or unknown numbers.
func LookupBank(routing string) (name string, ok bool) {
	if !ValidRouting(routing) {
		return "", false
	}
	name, ok = banks[routing]
	return name, ok
}

// ValidRouting checks the 9-digit ABA routing checksum:
// 3(d1+d4+d7) + 7(d2+d5+d8) + (d3+d6+d9) must be divisible by 10.
func ValidRouting(routing string) bool {
	if len(routing) != 9 {
		return false
	}
	sum := 0
	for i, weight := range [9]int{3, 7, 1, 3, 7, 1, 3, 7, 1} {
		d := int(routing[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		sum += d * weight
	}
	return sum%10 == 0
}

type CardBrand string

const (
	Visa       CardBrand = "VISA"
	Mastercard CardBrand = "MASTERCARD"
	Unknown    CardBrand = "UNKNOWN"
)

// ValidateCard reports whether the number passes Luhn and is a supported
// brand (Visa or Mastercard).
func ValidateCard(number string) (bool, CardBrand) {
	clean := strings.ReplaceAll(number, " ", "")
	clean = strings.ReplaceAll(clean, "-", "")

	if len(clean) < 13 || len(clean) > 19 || !passesLuhn(clean) {
		return false, Unknown
	}

	switch {
	case clean[0] == '4' && (len(clean) == 13 || len(clean) == 16):
		return true, Visa
	case len(clean) == 16 && clean[0] == '5' && clean[1] >= '1' && clean[1] <= '5':
		return true, Mastercard
	}
	return false, Unknown
}

// MaskCard keeps only the last four digits.
func MaskCard(number string) string {
	clean := strings.ReplaceAll(number, " ", "")
	clean = strings.ReplaceAll(clean, "-", "")
	if len(clean) <= 4 {
		return clean
	}
	return strings.Repeat("*", len(clean)-4) + clean[len(clean)-4:]
}

func passesLuhn(number string) bool {
	sum := 0
	alternate := false
	for i := len(number) - 1; i >= 0; i-- {
		n, err := strconv.Atoi(string(number[i]))
		if err != nil {
			return false
		}
		if alternate {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		alternate = !alternate
	}
	return sum%10 == 0
}
