package normalize

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Stella-M-560/currency-bot-api/internal/domain/models"
)

// Normalizer maps currency aliases and amount shorthand to canonical values.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	aliases map[string]string
	keys    []string // sorted, for deterministic substring scans
}

// New returns a Normalizer over the built-in alias table.
func New() *Normalizer {
	keys := make([]string, 0, len(aliasTable))
	for k := range aliasTable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &Normalizer{aliases: aliasTable, keys: keys}
}

// NormalizeCurrency resolves raw to an ISO code: exact key first, then substring containment
// either way. More than one distinct candidate is an ambiguity error.
func (n *Normalizer) NormalizeCurrency(raw string) (string, error) {
	key := cleanKey(raw)
	if key == "" {
		return "", &models.CurrencyError{Input: raw, Err: models.ErrUnrecognizedCurrency}
	}
	if code, ok := n.aliases[key]; ok {
		return code, nil
	}

	seen := make(map[string]struct{})
	var candidates []string
	for _, k := range n.keys {
		if !containsEither(key, k) {
			continue
		}
		code := n.aliases[k]
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		candidates = append(candidates, code)
	}

	switch len(candidates) {
	case 0:
		return "", &models.CurrencyError{Input: raw, Err: models.ErrUnrecognizedCurrency}
	case 1:
		return candidates[0], nil
	default:
		sort.Strings(candidates)
		return "", &models.CurrencyError{Input: raw, Candidates: candidates, Err: models.ErrAmbiguousCurrency}
	}
}

// containsEither matches key against an alias, ignoring single-rune fragments so "元" alone
// cannot drag in every yuan-suffixed alias.
func containsEither(key, alias string) bool {
	if strings.Contains(key, alias) {
		return len([]rune(alias)) >= 2
	}
	if strings.Contains(alias, key) {
		return len([]rune(key)) >= 2
	}
	return false
}

func cleanKey(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// Commas only count as thousands separators, so "1,5" stops after the 1.
var amountPattern = regexp.MustCompile(`^((?:[0-9]{1,3}(?:,[0-9]{3})+|[0-9]+)(?:\.[0-9]+)?|\.[0-9]+)\s*(.*)$`)

// ParseAmount parses a number with an optional unit suffix (万, 亿, K, M...).
// Empty input is 1. Input without a numeric prefix yields NaN and ErrInvalidAmount.
func (n *Normalizer) ParseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 1, nil
	}
	m := amountPattern.FindStringSubmatch(s)
	if m == nil {
		return math.NaN(), fmt.Errorf("%w: %q", models.ErrInvalidAmount, raw)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return math.NaN(), fmt.Errorf("%w: %q", models.ErrInvalidAmount, raw)
	}

	rest := strings.ToUpper(strings.TrimSpace(m[2]))
	if u, ok := unitScale(rest); ok {
		v *= u.scale
		rest = strings.TrimSpace(rest[len(u.suffix):])
	}
	// currency words like "元" may follow; stray digits, letters or separators may not
	if rest != "" && !trailingWordOK(rest) {
		return math.NaN(), fmt.Errorf("%w: %q", models.ErrInvalidAmount, raw)
	}

	if v <= 0 || math.IsInf(v, 0) {
		return v, fmt.Errorf("%w: %q", models.ErrInvalidAmount, raw)
	}
	return v, nil
}

func unitScale(suffix string) (amountUnit, bool) {
	if suffix == "" {
		return amountUnit{}, false
	}
	for _, u := range unitScales {
		if strings.HasPrefix(suffix, u.suffix) {
			return u, true
		}
	}
	return amountUnit{}, false
}

func trailingWordOK(rest string) bool {
	r, _ := utf8.DecodeRuneInString(rest)
	if r < utf8.RuneSelf {
		return false
	}
	return !unicode.IsDigit(r) && !unicode.IsPunct(r)
}
