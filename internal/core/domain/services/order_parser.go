package services

import (
	"regexp"
	"strconv"
	"strings"
)

// unknownItemName substitutes for an item whose name could not be extracted.
const unknownItemName = "Неизвестный товар"

var (
	// itemSeparatorPattern splits an order text into per-item segments on
	// the "название:" field marker, optionally preceded by a comma.
	itemSeparatorPattern = regexp.MustCompile(`,?\s*название:`)

	// itemWeightPattern finds a weight token inside a segment,
	// e.g. "14кг", "18.5 кг".
	itemWeightPattern = regexp.MustCompile(`([0-9]+(?:[.,][0-9]+)?)\s*кг`)

	// itemQuantityPattern finds a quantity token in any of the accepted
	// spellings of the label.
	itemQuantityPattern = regexp.MustCompile(`(?:количество|кол-во|кол\.)\s*[:\-\s]?\s*([0-9]+)`)

	// itemNameBoundaryPattern cuts a segment at the weight token or a
	// quantity label; the text before the cut is the item's display name.
	itemNameBoundaryPattern = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)?\s*кг|количество|кол-во|кол\.`)
)

// ParsedOrder is the outcome of recognizing a pasted order text.
//
// Three outcomes are possible:
//   - not recognized: no segment carried a weight token, the text is not an
//     order at all
//   - incomplete: weights were found but some items lack a quantity; the
//     missing item names are listed and no total is usable
//   - complete: every recognized item had weight and quantity, TotalKg holds
//     the sum of weight × quantity
type ParsedOrder struct {
	recognized bool
	totalKg    float64
	missing    []string
}

// Recognized reports whether at least one weight token was found.
func (p ParsedOrder) Recognized() bool {
	return p.recognized
}

// Complete reports whether the text is a fully specified order whose total
// may be used. A recognized order where every item lacks quantity yields a
// zero total and is NOT complete; the missing list is the signal, not the
// total.
func (p ParsedOrder) Complete() bool {
	return p.recognized && len(p.missing) == 0
}

// TotalKg returns the summed weight of fully specified items.
// Only meaningful when Complete() is true.
func (p ParsedOrder) TotalKg() float64 {
	return p.totalKg
}

// MissingItems returns the display names of recognized items that lack a
// quantity token, in order of appearance.
func (p ParsedOrder) MissingItems() []string {
	return p.missing
}

// ParseOrderText recognizes a pasted order text of the form
//
//	Название: Краска ... 14кг
//	Количество: 3
//	Название: Штукатурка ... 18кг
//	Количество: 11
//
// The text is split into segments on the "название:" marker. A segment
// without a weight token is not a product line and is skipped entirely; it
// does not count toward recognition. A segment with a weight token but no
// quantity token contributes its item name to the missing list and nothing
// to the total.
func ParseOrderText(text string) ParsedOrder {
	if text == "" {
		return ParsedOrder{}
	}

	t := strings.ToLower(text)
	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\n", " ")

	var (
		total   float64
		missing []string
	)
	recognized := false

	for _, segment := range itemSeparatorPattern.Split(t, -1) {
		if strings.TrimSpace(segment) == "" {
			continue
		}

		weightMatch := itemWeightPattern.FindStringSubmatch(segment)
		if weightMatch == nil {
			continue
		}

		recognized = true
		weight, err := strconv.ParseFloat(strings.ReplaceAll(weightMatch[1], ",", "."), 64)
		if err != nil {
			continue
		}

		if qtyMatch := itemQuantityPattern.FindStringSubmatch(segment); qtyMatch != nil {
			qty, qtyErr := strconv.Atoi(qtyMatch[1])
			if qtyErr != nil {
				continue
			}
			total += weight * float64(qty)
		} else {
			missing = append(missing, extractItemName(segment))
		}
	}

	if !recognized {
		return ParsedOrder{}
	}

	return ParsedOrder{recognized: true, totalKg: total, missing: missing}
}

// extractItemName pulls the item's display name out of a segment: the text
// preceding the weight or quantity token, trimmed of label remnants and
// punctuation.
func extractItemName(segment string) string {
	name := itemNameBoundaryPattern.Split(segment, -1)[0]
	name = strings.Trim(name, " ,:-")

	if strings.HasPrefix(name, "товар") {
		if _, after, found := strings.Cut(name, ":"); found {
			name = after
		}
		name = strings.TrimSpace(name)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return unknownItemName
	}
	return name
}
