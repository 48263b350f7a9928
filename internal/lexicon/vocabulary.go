// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/currency"
)

// Currency maps a single currency symbol to the unit name used when the
// amount is spoken ("$" is read as "dollars") and its ISO 4217 code.
type Currency struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Name   string `json:"name" yaml:"name"`
	Code   string `json:"code,omitempty" yaml:"code,omitempty"`
}

// Vocabulary is the raw word list a Lexicon is built from. Entries may be
// in any case; New normalizes them.
type Vocabulary struct {
	// SimpleUnits match verbatim and never combine with a prefix.
	SimpleUnits []string `json:"simple_units" yaml:"simple_units"`

	// BaseUnits combine with prefixes ("gram" + "kilo") and are pluralized.
	BaseUnits []string `json:"base_units" yaml:"base_units"`

	// BaseUnitsNoPlural are symbol abbreviations that combine with prefixes
	// but never take a plural "s" ("g", "Hz").
	BaseUnitsNoPlural []string `json:"base_units_no_plural" yaml:"base_units_no_plural"`

	// Prefixes are metric prefixes in long and symbol form.
	Prefixes []string `json:"prefixes" yaml:"prefixes"`

	// Currencies lists recognized currency symbols.
	Currencies []Currency `json:"currencies" yaml:"currencies"`
}

// DefaultVocabulary returns the built-in unit vocabulary. Each call returns
// fresh slices that the caller may modify.
func DefaultVocabulary() Vocabulary {
	simple := []string{
		// General units.
		"acre", "attosecond", "average Julian calendar year", "byte",
		"calendar year", "candlestick", "centiare", "centigram", "centiliter",
		"centimeter", "cg", "cm", "degrees Fahrenheit", "dry pint",
		"Fahrenheit", "foot", "ft", "gallon", "gallon us", "grad", "ha",
		"hectare", "Hectopascal", "hour", "hPa", "in", "inch", "kcal",
		"Kilocalorie", "KJ", "knot", "kWh", "lb", "leap year", "liter",
		"lumen", "microgram", "microsecond", "mile", "Minute of arc",
		"nautical mile", "nautical mile/h", "picosecond", "pint",
		"pound avoirdupois", "Pounds per square inch", "Psi", "Ra", "Rankine",
		"Reaumur", "Second of arc", "short hundredweight", "short ton",
		"square centimeter", "stone", "therm", "thm", "ton", "week", "yd",
		// Square and cubic units.
		"cubic centimeter", "cubic decimeter", "cubic foot", "cubic inch",
		"cubic meter", "cubic mile", "cubic kilometer", "cubic yard", "cu cm",
		"cu dm", "cu ft", "cu in", "cu m", "cu km", "cu yd",
		"square decimeter", "square foot", "square inch", "square meter",
		"square mile", "square kilometer", "square yard", "sq dm", "sq ft",
		"sq in", "sq m", "sq km", "sq yd",
		// Irregular plurals the "s" rule cannot produce.
		"feet", "inches", "square feet", "cubic feet", "square inches",
		"cubic inches",
		// Countable things and money.
		"adult", "child", "children", "dollar", "euro", "person", "people",
		"pound",
	}
	base := []string{
		"amp", "ampere", "ANSI lumens", "becquerel", "byte", "candela",
		"celsius", "coulomb", "degree", "degrees celsius", "farad", "gram",
		"gray", "henry", "hertz", "joule", "katal", "kelvin", "kilogram",
		"lumen", "meter", "metre", "mole", "newton", "ohm", "pascal",
		"peak lumens", "radian", "second", "siemens", "sievert", "steradian",
		"tesla", "volt", "watt", "weber", "watt-hour",
	}
	noPlural := []string{
		"b", "Bq", "cd", "g", "Gy", "Hz", "j", "kat", "kg", "lm", "lux", "lx",
		"m", "mol", "n", "Pa", "rad", "sr", "Sv", "v", "w", "Wb", "Wh",
	}
	prefixes := []string{
		"deca", "hecto", "kilo", "mega", "giga", "tera", "peta", "exa",
		"zetta", "yotta", "h", "k", "M", "G", "T", "P", "Z", "Y",
	}
	currencies := []Currency{
		{Symbol: "$", Name: "dollars", Code: currency.USD.String()},
		{Symbol: "€", Name: "euros", Code: currency.EUR.String()},
		{Symbol: "£", Name: "pounds", Code: currency.GBP.String()},
		{Symbol: "¥", Name: "yen", Code: currency.JPY.String()},
	}
	return Vocabulary{
		SimpleUnits:       simple,
		BaseUnits:         base,
		BaseUnitsNoPlural: noPlural,
		Prefixes:          prefixes,
		Currencies:        currencies,
	}
}

// Merge returns v extended with the entries of o. Currencies in o replace
// currencies in v that share a symbol.
func (v Vocabulary) Merge(o Vocabulary) Vocabulary {
	out := Vocabulary{
		SimpleUnits:       append(append([]string(nil), v.SimpleUnits...), o.SimpleUnits...),
		BaseUnits:         append(append([]string(nil), v.BaseUnits...), o.BaseUnits...),
		BaseUnitsNoPlural: append(append([]string(nil), v.BaseUnitsNoPlural...), o.BaseUnitsNoPlural...),
		Prefixes:          append(append([]string(nil), v.Prefixes...), o.Prefixes...),
	}

	override := make(map[string]bool, len(o.Currencies))
	for _, c := range o.Currencies {
		override[c.Symbol] = true
	}
	for _, c := range v.Currencies {
		if !override[c.Symbol] {
			out.Currencies = append(out.Currencies, c)
		}
	}
	out.Currencies = append(out.Currencies, o.Currencies...)
	return out
}

// LoadVocabulary reads a YAML vocabulary file.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("reading vocabulary %s: %w", path, err)
	}
	v, err := ParseVocabulary(data)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("vocabulary %s: %w", path, err)
	}
	return v, nil
}

// ParseVocabulary decodes a YAML vocabulary document. Unknown keys,
// multi-character currency symbols and unknown ISO codes are rejected.
func ParseVocabulary(data []byte) (Vocabulary, error) {
	var v Vocabulary
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&v); err != nil {
		return Vocabulary{}, fmt.Errorf("parsing YAML: %w", err)
	}

	for i, c := range v.Currencies {
		if utf8.RuneCountInString(c.Symbol) != 1 {
			return Vocabulary{}, fmt.Errorf("currency %q: symbol must be a single character", c.Symbol)
		}
		if c.Name == "" {
			return Vocabulary{}, fmt.Errorf("currency %q: missing name", c.Symbol)
		}
		if c.Code == "" {
			continue
		}
		unit, err := currency.ParseISO(c.Code)
		if err != nil {
			return Vocabulary{}, fmt.Errorf("currency %q: %w", c.Symbol, err)
		}
		v.Currencies[i].Code = unit.String()
	}
	return v, nil
}
