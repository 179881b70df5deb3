package classify

import "strings"

// Case categories.
const (
	CategoryPreschoolChild  = "preschool_child"
	CategorySchoolAgeChild  = "school_age_child"
	CategoryDementiaPatient = "dementia_patient"
	CategoryElderly         = "elderly"
	CategoryAdultRunaway    = "adult_runaway"
	CategoryIntellectual    = "intellectual_disability"
	CategoryAutismSpectrum  = "autism_spectrum"
	CategoryMentalDisorder  = "mental_disorder"
	CategoryOther           = "other"
)

var (
	dementiaTextKeywords = []string{"치매", "알츠하이머", "기억", "인지", "배회"}
	intellectualKeywords = []string{"지적장애", "발달장애", "정신지체"}
	autismKeywords       = []string{"자폐", "아스퍼거", "자폐스펙트럼"}
	mentalTextKeywords   = []string{"정신질환", "조현병", "우울증", "정신병"}
)

// Category buckets a case by age and description. Description-based
// categories take precedence over the age-derived one.
func Category(description string, age int) string {
	category := CategoryOther

	if age > 0 {
		switch {
		case age <= 8:
			category = CategoryPreschoolChild
		case age <= 18:
			category = CategorySchoolAgeChild
		case age >= 65:
			if containsAny(strings.ToLower(description), dementiaTextKeywords) {
				category = CategoryDementiaPatient
			} else {
				category = CategoryElderly
			}
		default:
			category = CategoryAdultRunaway
		}
	}

	if description != "" {
		lower := strings.ToLower(description)
		switch {
		case containsAny(lower, intellectualKeywords):
			category = CategoryIntellectual
		case containsAny(lower, autismKeywords):
			category = CategoryAutismSpectrum
		case containsAny(lower, mentalTextKeywords):
			category = CategoryMentalDisorder
		case containsAny(lower, dementiaTextKeywords):
			category = CategoryDementiaPatient
		}
	}

	return category
}
