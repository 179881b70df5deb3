package ner

// Output entity categories.
const (
	CategoryDiseases  = "diseases"
	CategoryDrugs     = "drugs"
	CategoryClothing  = "clothing"
	CategoryColors    = "colors"
	CategoryAges      = "ages"
	CategoryLocations = "locations"
	CategoryTransport = "transport"
)

// Labels is the BIO tag set the token-classification model was trained on.
// Index order must match the model's output dimension.
var Labels = []string{
	"O",
	"B-TMM_DISEASE", "I-TMM_DISEASE",
	"B-TMM_DRUG", "I-TMM_DRUG",
	"B-CV_CLOTHING", "I-CV_CLOTHING",
	"B-TM_COLOR", "I-TM_COLOR",
	"B-QT_AGE", "I-QT_AGE",
	"B-LCP_CITY", "I-LCP_CITY",
	"B-LCP_COUNTY", "I-LCP_COUNTY",
	"B-AF_TRANSPORT", "I-AF_TRANSPORT",
}

// categoryByType maps a span type to its output category. City and county
// both fold into locations.
var categoryByType = map[string]string{
	"TMM_DISEASE":  CategoryDiseases,
	"TMM_DRUG":     CategoryDrugs,
	"CV_CLOTHING":  CategoryClothing,
	"TM_COLOR":     CategoryColors,
	"QT_AGE":       CategoryAges,
	"LCP_CITY":     CategoryLocations,
	"LCP_COUNTY":   CategoryLocations,
	"AF_TRANSPORT": CategoryTransport,
}
