package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/amber/internal/models"
	"github.com/your-org/amber/internal/ner"
	"github.com/your-org/amber/internal/registry"
)

type stubExtractor struct {
	entities map[string][]string
}

func (s *stubExtractor) Extract(text string) map[string][]string {
	if s.entities == nil {
		return map[string][]string{}
	}
	return s.entities
}

type stubGeocoder struct {
	coords models.Coordinates
	calls  int
}

func (s *stubGeocoder) Locate(ctx context.Context, address string) models.Coordinates {
	s.calls++
	return s.coords
}

type stubPhotoSink struct {
	stored map[string]string
	calls  int
	err    error
}

func (s *stubPhotoSink) PutPhotoBase64(ctx context.Context, personID, encoded string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if s.stored == nil {
		s.stored = make(map[string]string)
	}
	key := "photos/" + personID
	s.stored[personID] = encoded
	return key, nil
}

func testRecord() registry.RawRecord {
	return registry.RawRecord{
		ID:          "20250601-1",
		Name:        "홍길동",
		AgeNow:      "82",
		Gender:      "남성",
		Address:     "서울특별시 강남구",
		Description: "치매 증상, 휠체어 이용",
	}
}

func TestProcessClassifiesRecord(t *testing.T) {
	p := NewProcessor(&stubExtractor{entities: map[string][]string{
		ner.CategoryDiseases:  {"치매"},
		ner.CategoryTransport: {"휠체어"},
	}}, &stubGeocoder{coords: models.Coordinates{Lat: 37.49, Lng: 127.02}}, nil)

	person, err := p.Process(context.Background(), testRecord())
	require.NoError(t, err)

	assert.Equal(t, "20250601-1", person.ID)
	assert.Equal(t, 82, person.Age)
	assert.Equal(t, models.PriorityHigh, person.Priority)
	assert.Contains(t, person.RiskFactors, "elderly (80+)")
	assert.Contains(t, person.RiskFactors, "dementia-related condition")
	assert.Contains(t, person.RiskFactors, "mobility impairment")
	assert.Equal(t, "dementia_patient", person.Category)
	assert.Equal(t, 37.49, person.Lat)
	assert.Equal(t, 127.02, person.Lng)
	assert.Equal(t, models.StatusActive, person.Status)
}

func TestProcessSynthesizesMissingID(t *testing.T) {
	p := NewProcessor(&stubExtractor{}, &stubGeocoder{}, nil)

	rec := testRecord()
	rec.ID = ""

	person, err := p.Process(context.Background(), rec)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(person.ID, "temp_"), "got id %q", person.ID)
}

func TestProcessAgeFallsBackToRegisteredAge(t *testing.T) {
	p := NewProcessor(&stubExtractor{}, &stubGeocoder{}, nil)

	rec := testRecord()
	rec.AgeNow = ""
	rec.Age = "79"

	person, err := p.Process(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, 79, person.Age)
}

func TestProcessDementiaCategoryForcesHighPriority(t *testing.T) {
	p := NewProcessor(&stubExtractor{}, &stubGeocoder{}, nil)

	rec := testRecord()
	rec.AgeNow = "45"
	rec.Description = "치매 초기 진단"

	person, err := p.Process(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "dementia_patient", person.Category)
	assert.Equal(t, models.PriorityHigh, person.Priority)
}

func TestProcessStoresPhoto(t *testing.T) {
	photos := &stubPhotoSink{}
	p := NewProcessor(&stubExtractor{}, &stubGeocoder{}, photos)

	rec := testRecord()
	rec.PhotoBase64 = "aGVsbG8="

	person, err := p.Process(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "photos/20250601-1", person.PhotoKey)
	assert.Equal(t, "aGVsbG8=", photos.stored["20250601-1"])
}

func TestProcessPhotoFailureIsNotFatal(t *testing.T) {
	photos := &stubPhotoSink{err: errors.New("bucket unavailable")}
	p := NewProcessor(&stubExtractor{}, &stubGeocoder{}, photos)

	rec := testRecord()
	rec.PhotoBase64 = "aGVsbG8="

	person, err := p.Process(context.Background(), rec)
	require.NoError(t, err)
	assert.Empty(t, person.PhotoKey)
}
