package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/your-org/amber/internal/models"
	"github.com/your-org/amber/internal/ner"
)

func TestClassifyAgeBands(t *testing.T) {
	tests := []struct {
		name     string
		age      int
		factor   string
		priority models.Priority
	}{
		{"over eighty", 82, RiskElderly80, models.PriorityHigh},
		{"exactly eighty", 80, RiskElderly80, models.PriorityHigh},
		{"elderly", 70, RiskElderly65, models.PriorityMedium},
		{"child", 7, RiskChild, models.PriorityHigh},
		{"exactly ten", 10, RiskChild, models.PriorityHigh},
		{"minor", 14, RiskMinor, models.PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factors, priority := Classify(nil, tt.age)
			assert.Equal(t, []string{tt.factor}, factors)
			assert.Equal(t, tt.priority, priority)
		})
	}
}

func TestClassifyUnknownAge(t *testing.T) {
	factors, priority := Classify(nil, 0)
	assert.Empty(t, factors)
	assert.Equal(t, models.PriorityMedium, priority)
}

func TestClassifyDiseaseFactors(t *testing.T) {
	factors, priority := Classify(map[string][]string{
		ner.CategoryDiseases: {"치매 초기"},
	}, 45)

	assert.Contains(t, factors, RiskDementia)
	assert.NotContains(t, factors, RiskMental)
	assert.Equal(t, models.PriorityHigh, priority)
}

func TestClassifyMentalHealthFactor(t *testing.T) {
	factors, priority := Classify(map[string][]string{
		ner.CategoryDiseases: {"우울증"},
	}, 30)

	assert.Contains(t, factors, RiskMental)
	assert.Equal(t, models.PriorityHigh, priority)
}

func TestClassifyMedicationIsNotHighPriority(t *testing.T) {
	factors, priority := Classify(map[string][]string{
		ner.CategoryDrugs: {"혈압약"},
	}, 40)

	assert.Equal(t, []string{RiskMedication}, factors)
	assert.Equal(t, models.PriorityMedium, priority)
}

func TestClassifyCombinedCase(t *testing.T) {
	entities := map[string][]string{
		ner.CategoryDiseases:  {"치매"},
		ner.CategoryTransport: {"휠체어"},
	}

	factors, priority := Classify(entities, 82)

	assert.Contains(t, factors, RiskElderly80)
	assert.Contains(t, factors, RiskDementia)
	assert.Contains(t, factors, RiskMobility)
	assert.Equal(t, models.PriorityHigh, priority)
}

func TestClassifyDeduplicatesFactors(t *testing.T) {
	factors, _ := Classify(map[string][]string{
		ner.CategoryDiseases: {"치매", "알츠하이머 치매"},
	}, 50)

	assert.Equal(t, []string{RiskDementia}, factors)
}

func TestClassifyDeterministic(t *testing.T) {
	entities := map[string][]string{
		ner.CategoryDiseases:  {"치매", "우울증"},
		ner.CategoryDrugs:     {"약"},
		ner.CategoryTransport: {"지팡이", "휠체어"},
	}

	firstFactors, firstPriority := Classify(entities, 82)
	secondFactors, secondPriority := Classify(entities, 82)

	assert.Equal(t, firstFactors, secondFactors)
	assert.Equal(t, firstPriority, secondPriority)
}

func TestTextRiskFactors(t *testing.T) {
	assert.Equal(t, []string{RiskLivesAlone}, TextRiskFactors("독거 노인"))
	assert.Equal(t, []string{RiskWandering}, TextRiskFactors("배회 습관 있음"))
	assert.Empty(t, TextRiskFactors("특이사항 없음"))

	both := TextRiskFactors("혼자 거주, 배회 이력")
	assert.Contains(t, both, RiskLivesAlone)
	assert.Contains(t, both, RiskWandering)
}
