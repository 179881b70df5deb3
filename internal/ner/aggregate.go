package ner

import "strings"

// spanAggregator is a finite-state walker over a BIO tag sequence. It has
// two states: no open span, or an open span of a given type. A B- tag
// flushes any open span and opens a new one; an I- tag of the open span's
// type extends it; any other tag flushes.
type spanAggregator struct {
	openType string
	pieces   []string
	result   map[string][]string
	seen     map[string]map[string]struct{}
}

func newSpanAggregator() *spanAggregator {
	return &spanAggregator{
		result: make(map[string][]string),
		seen:   make(map[string]map[string]struct{}),
	}
}

// feed consumes one (token, label) pair.
func (a *spanAggregator) feed(token, label string) {
	switch {
	case strings.HasPrefix(label, "B-"):
		a.flush()
		a.openType = label[2:]
		a.pieces = append(a.pieces[:0], token)

	case strings.HasPrefix(label, "I-") && a.openType == label[2:]:
		a.pieces = append(a.pieces, token)

	default:
		a.flush()
	}
}

// flush closes the open span, detokenizes it, and records it under its
// category. Empty spans and unknown span types are discarded.
func (a *spanAggregator) flush() {
	if a.openType == "" {
		a.pieces = a.pieces[:0]
		return
	}

	category, ok := categoryByType[a.openType]
	text := detokenize(a.pieces)
	a.openType = ""
	a.pieces = a.pieces[:0]

	if !ok || text == "" {
		return
	}

	if _, dup := a.seen[category][text]; dup {
		return
	}
	if a.seen[category] == nil {
		a.seen[category] = make(map[string]struct{})
	}
	a.seen[category][text] = struct{}{}
	a.result[category] = append(a.result[category], text)
}

// entities flushes any trailing span and returns only non-empty categories.
func (a *spanAggregator) entities() map[string][]string {
	a.flush()
	return a.result
}

// detokenize joins word pieces back into surface text: continuation pieces
// attach without a space, sentencepiece markers are stripped.
func detokenize(pieces []string) string {
	var b strings.Builder
	for i, p := range pieces {
		if cont, ok := strings.CutPrefix(p, "##"); ok {
			b.WriteString(cont)
			continue
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.ReplaceAll(p, "▁", ""))
	}
	return strings.TrimSpace(b.String())
}
