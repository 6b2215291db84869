package sdk

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Asset names a balance kind on the host ledger: the native value unit or a sale token.
type Asset string

const (
	// AssetNative is the value unit buyers pay with.
	AssetNative Asset = "stx"
)

// AmountDecimals is the fixed precision of every amount on the host (micro units).
const AmountDecimals = 6

// One is a single whole unit expressed in micro units.
const One uint64 = 1_000_000

// String returns the raw ticker string for logging or host calls.
// Example payload: sdk.AssetNative.String()
func (a Asset) String() string {
	return string(a)
}

// FormatAmount renders micro units as a decimal string, e.g. 10500000 -> "10.500000".
func FormatAmount(v uint64) string {
	return fmt.Sprintf("%d.%06d", v/One, v%One)
}

// ParseAmount reads either a plain integer of micro units ("10000000") or a decimal
// with up to six fractional digits ("10.5"). Floats are never involved.
func ParseAmount(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty amount")
	}
	whole, frac, hasDot := strings.Cut(s, ".")
	if !hasDot {
		return strconv.ParseUint(s, 10, 64)
	}
	if len(frac) > AmountDecimals {
		return 0, fmt.Errorf("amount %q has more than %d decimals", s, AmountDecimals)
	}
	if whole == "" {
		whole = "0"
	}
	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	frac += strings.Repeat("0", AmountDecimals-len(frac))
	f, err := strconv.ParseUint(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if w > (^uint64(0)-f)/One {
		return 0, fmt.Errorf("amount %q overflows", s)
	}
	return w*One + f, nil
}
