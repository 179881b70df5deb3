package ner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func feedAll(a *spanAggregator, pairs [][2]string) map[string][]string {
	for _, p := range pairs {
		a.feed(p[0], p[1])
	}
	return a.entities()
}

func TestAggregatorSingleSpan(t *testing.T) {
	got := feedAll(newSpanAggregator(), [][2]string{
		{"치", "B-TMM_DISEASE"},
		{"##매", "I-TMM_DISEASE"},
		{"환자", "O"},
	})

	assert.Equal(t, map[string][]string{
		CategoryDiseases: {"치매"},
	}, got)
}

func TestAggregatorBTagClosesOpenSpan(t *testing.T) {
	got := feedAll(newSpanAggregator(), [][2]string{
		{"서울", "B-LCP_CITY"},
		{"강남구", "B-LCP_COUNTY"},
	})

	// City and county roll up into the same category.
	assert.Equal(t, map[string][]string{
		CategoryLocations: {"서울", "강남구"},
	}, got)
}

func TestAggregatorMismatchedITagDropsSpan(t *testing.T) {
	got := feedAll(newSpanAggregator(), [][2]string{
		{"빨간", "B-TM_COLOR"},
		{"모자", "I-CV_CLOTHING"},
	})

	// The I- tag of a different type closes the color span and opens
	// nothing; the orphaned clothing piece never forms a span.
	assert.Equal(t, map[string][]string{
		CategoryColors: {"빨간"},
	}, got)
}

func TestAggregatorTrailingSpanIsFlushed(t *testing.T) {
	got := feedAll(newSpanAggregator(), [][2]string{
		{"휠", "B-AF_TRANSPORT"},
		{"##체어", "I-AF_TRANSPORT"},
	})

	assert.Equal(t, map[string][]string{
		CategoryTransport: {"휠체어"},
	}, got)
}

func TestAggregatorDeduplicatesWithinCategory(t *testing.T) {
	got := feedAll(newSpanAggregator(), [][2]string{
		{"치매", "B-TMM_DISEASE"},
		{"환자", "O"},
		{"치매", "B-TMM_DISEASE"},
	})

	assert.Equal(t, []string{"치매"}, got[CategoryDiseases])
}

func TestAggregatorEmptyInput(t *testing.T) {
	got := newSpanAggregator().entities()
	assert.Empty(t, got)
}

func TestDetokenize(t *testing.T) {
	assert.Equal(t, "치매", detokenize([]string{"치", "##매"}))
	assert.Equal(t, "서울 강남구", detokenize([]string{"서울", "강남구"}))
	assert.Equal(t, "빨간색", detokenize([]string{"▁빨간색"}))
	assert.Equal(t, "", detokenize(nil))
}
