package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/your-org/amber/internal/classify"
	"github.com/your-org/amber/internal/models"
	"github.com/your-org/amber/internal/ner"
	"github.com/your-org/amber/internal/registry"
)

// Geocoder resolves a free-form address to coordinates.
type Geocoder interface {
	Locate(ctx context.Context, address string) models.Coordinates
}

// PhotoSink stores a base64 registry photo and returns its object key.
type PhotoSink interface {
	PutPhotoBase64(ctx context.Context, personID, encoded string) (string, error)
}

// Processor turns one raw registry record into a classified MissingPerson.
type Processor struct {
	extractor ner.Extractor
	geocoder  Geocoder
	photos    PhotoSink
	now       func() time.Time
}

func NewProcessor(extractor ner.Extractor, geocoder Geocoder, photos PhotoSink) *Processor {
	return &Processor{
		extractor: extractor,
		geocoder:  geocoder,
		photos:    photos,
		now:       time.Now,
	}
}

// Process extracts entities, classifies risk and geocodes the record.
// Records without a registry id get a synthetic one so they still flow
// through dedup and persistence.
func (p *Processor) Process(ctx context.Context, rec registry.RawRecord) (*models.MissingPerson, error) {
	id := rec.ID.String()
	if id == "" {
		id = "temp_" + uuid.New().String()
	}

	age := rec.AgeNow.Int()
	if age == 0 {
		age = rec.Age.Int()
	}

	entities := p.extractor.Extract(rec.Description)

	riskFactors, priority := classify.Classify(entities, age)
	riskFactors = append(riskFactors, classify.TextRiskFactors(rec.Description)...)

	category := classify.Category(rec.Description, age)
	if category == classify.CategoryDementiaPatient {
		priority = models.PriorityHigh
	}

	coords := p.geocoder.Locate(ctx, rec.Address)

	person := &models.MissingPerson{
		ID:          id,
		Name:        rec.Name,
		Age:         age,
		Gender:      rec.Gender,
		Location:    rec.Address,
		Description: rec.Description,
		Priority:    priority,
		RiskFactors: riskFactors,
		Entities:    entities,
		Category:    category,
		Lat:         coords.Lat,
		Lng:         coords.Lng,
		CreatedAt:   p.now(),
		Status:      models.StatusActive,
	}

	if rec.PhotoBase64 != "" && p.photos != nil {
		key, err := p.photos.PutPhotoBase64(ctx, id, rec.PhotoBase64)
		if err != nil {
			slog.Warn("store photo failed", "person_id", id, "error", err)
		} else {
			person.PhotoKey = key
		}
	}

	return person, nil
}
