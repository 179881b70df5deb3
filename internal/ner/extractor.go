package ner

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/your-org/amber/internal/config"
	"github.com/your-org/amber/internal/observability"
)

// Extractor converts free text into entity categories. Implementations
// never return an error; degraded strategies return what they can.
type Extractor interface {
	Extract(text string) map[string][]string
}

// Select picks the extraction strategy once at startup: the ONNX model when
// it loads, keyword matching otherwise. The returned closer releases model
// resources and is a no-op for the keyword strategy.
func Select(cfg config.NERConfig) (Extractor, func()) {
	modelPath := filepath.Join(cfg.ModelsDir, "ner.onnx")
	vocabPath := filepath.Join(cfg.ModelsDir, "vocab.txt")

	model, err := NewModelExtractor(modelPath, vocabPath, cfg.MaxSeqLen)
	if err != nil {
		slog.Warn("ner model unavailable, using keyword fallback", "error", err)
		return NewKeywordExtractor(), func() {}
	}

	slog.Info("ner model loaded", "path", modelPath, "max_seq_len", cfg.MaxSeqLen)
	return &modelStrategy{model: model, fallback: NewKeywordExtractor()}, model.Close
}

// modelStrategy wraps the model so that inference failures degrade to the
// keyword fallback for that call only.
type modelStrategy struct {
	model    *ModelExtractor
	fallback *KeywordExtractor
}

func (s *modelStrategy) Extract(text string) map[string][]string {
	if text == "" {
		return map[string][]string{}
	}

	start := time.Now()
	entities, err := s.model.extract(text)
	if err != nil {
		slog.Warn("ner inference failed, using keyword fallback", "error", err)
		observability.ExtractionDuration.WithLabelValues("fallback").Observe(time.Since(start).Seconds())
		return s.fallback.Extract(text)
	}

	observability.ExtractionDuration.WithLabelValues("model").Observe(time.Since(start).Seconds())
	return entities
}
