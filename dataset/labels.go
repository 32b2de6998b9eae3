package dataset

import (
	"slices"

	"github.com/samber/lo"
)

// LabelCode maps label strings to dense integer codes in [0, Len()).
// Codes follow the sorted order of the distinct labels, so the same label
// set always produces the same mapping. A LabelCode is read-only once built.
type LabelCode struct {
	labels []string       // code -> label
	codes  map[string]int // label -> code
}

// NewLabelCode builds a LabelCode from every label observed, duplicates
// included.
func NewLabelCode(observed []string) LabelCode {
	labels := lo.Uniq(observed)
	slices.Sort(labels)

	codes := make(map[string]int, len(labels))
	for i, label := range labels {
		codes[label] = i
	}

	return LabelCode{labels: labels, codes: codes}
}

// Code returns the integer code for label.
func (c LabelCode) Code(label string) (int, bool) {
	code, ok := c.codes[label]
	return code, ok
}

// Label returns the label string for code.
func (c LabelCode) Label(code int) (string, bool) {
	if code < 0 || code >= len(c.labels) {
		return "", false
	}
	return c.labels[code], true
}

// Len returns the number of distinct labels.
func (c LabelCode) Len() int { return len(c.labels) }

// Labels returns the labels in code order.
func (c LabelCode) Labels() []string {
	return slices.Clone(c.labels)
}
