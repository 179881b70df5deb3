package ner

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ModelExtractor runs a BERT token-classification ONNX model and aggregates
// the predicted BIO tags into entity spans.
type ModelExtractor struct {
	mu sync.Mutex // ORT sessions handle one run at a time

	session    *ort.AdvancedSession
	inputIDs   *ort.Tensor[int64]
	attention  *ort.Tensor[int64]
	tokenTypes *ort.Tensor[int64]
	logits     *ort.Tensor[float32]
	tokenizer  *Tokenizer
	maxLen     int
}

// NewModelExtractor loads the token-classification ONNX model and its
// WordPiece vocabulary.
func NewModelExtractor(modelPath, vocabPath string, maxLen int) (*ModelExtractor, error) {
	tokenizer, err := LoadTokenizer(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	inputShape := ort.NewShape(1, int64(maxLen))
	inputIDs, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		return nil, fmt.Errorf("create input_ids tensor: %w", err)
	}
	attention, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		inputIDs.Destroy()
		return nil, fmt.Errorf("create attention_mask tensor: %w", err)
	}
	tokenTypes, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		inputIDs.Destroy()
		attention.Destroy()
		return nil, fmt.Errorf("create token_type_ids tensor: %w", err)
	}

	outputShape := ort.NewShape(1, int64(maxLen), int64(len(Labels)))
	logits, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputIDs.Destroy()
		attention.Destroy()
		tokenTypes.Destroy()
		return nil, fmt.Errorf("create logits tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"logits"},
		[]ort.Value{inputIDs, attention, tokenTypes},
		[]ort.Value{logits},
		nil,
	)
	if err != nil {
		inputIDs.Destroy()
		attention.Destroy()
		tokenTypes.Destroy()
		logits.Destroy()
		return nil, fmt.Errorf("create ner session: %w", err)
	}

	return &ModelExtractor{
		session:    session,
		inputIDs:   inputIDs,
		attention:  attention,
		tokenTypes: tokenTypes,
		logits:     logits,
		tokenizer:  tokenizer,
		maxLen:     maxLen,
	}, nil
}

// extract tags the text and aggregates spans. Errors are returned to the
// caller so the strategy wrapper can degrade to keyword matching.
func (m *ModelExtractor) extract(text string) (map[string][]string, error) {
	enc := m.tokenizer.Encode(text, m.maxLen)

	m.mu.Lock()
	defer m.mu.Unlock()

	copy(m.inputIDs.GetData(), enc.IDs)
	copy(m.attention.GetData(), enc.Mask)
	tt := m.tokenTypes.GetData()
	for i := range tt {
		tt[i] = 0
	}

	if err := m.session.Run(); err != nil {
		return nil, fmt.Errorf("run ner model: %w", err)
	}

	logits := m.logits.GetData()
	agg := newSpanAggregator()

	// Position 0 is [CLS]; word pieces occupy 1..len(Tokens).
	for i, token := range enc.Tokens {
		pos := i + 1
		agg.feed(token, Labels[argmax(logits[pos*len(Labels):(pos+1)*len(Labels)])])
	}

	return agg.entities(), nil
}

func argmax(row []float32) int {
	best := 0
	for i, v := range row {
		if v > row[best] {
			best = i
		}
	}
	return best
}

func (m *ModelExtractor) Close() {
	if m.session != nil {
		m.session.Destroy()
	}
	if m.inputIDs != nil {
		m.inputIDs.Destroy()
	}
	if m.attention != nil {
		m.attention.Destroy()
	}
	if m.tokenTypes != nil {
		m.tokenTypes.Destroy()
	}
	if m.logits != nil {
		m.logits.Destroy()
	}
}
