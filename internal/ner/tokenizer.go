package ner

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
)

const (
	padToken = "[PAD]"
	unkToken = "[UNK]"
	clsToken = "[CLS]"
	sepToken = "[SEP]"

	// maxPiecesPerWord caps greedy matching on pathological input.
	maxPiecesPerWord = 100
)

// Tokenizer is a WordPiece tokenizer over a BERT-style vocabulary file
// (one token per line, line number = token id).
type Tokenizer struct {
	vocab map[string]int64
	padID int64
	unkID int64
	clsID int64
	sepID int64
}

func LoadTokenizer(vocabPath string) (*Tokenizer, error) {
	f, err := os.Open(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("open vocab file: %w", err)
	}
	defer f.Close()

	vocab := make(map[string]int64)
	scanner := bufio.NewScanner(f)
	var id int64
	for scanner.Scan() {
		vocab[strings.TrimRight(scanner.Text(), "\r\n")] = id
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vocab file: %w", err)
	}

	t := &Tokenizer{vocab: vocab}
	for _, special := range []struct {
		token string
		dst   *int64
	}{
		{padToken, &t.padID},
		{unkToken, &t.unkID},
		{clsToken, &t.clsID},
		{sepToken, &t.sepID},
	} {
		id, ok := vocab[special.token]
		if !ok {
			return nil, fmt.Errorf("vocab missing special token %s", special.token)
		}
		*special.dst = id
	}

	return t, nil
}

// Encoding is a fixed-length model input. Tokens holds only the word
// pieces, aligned with IDs[1:1+len(Tokens)] (position 0 is [CLS]).
type Encoding struct {
	Tokens []string
	IDs    []int64
	Mask   []int64
}

// Encode tokenizes text into word pieces, wraps them in [CLS]/[SEP], and
// pads to maxLen.
func (t *Tokenizer) Encode(text string, maxLen int) Encoding {
	pieces := t.wordPieces(text)
	if len(pieces) > maxLen-2 {
		pieces = pieces[:maxLen-2]
	}

	ids := make([]int64, maxLen)
	mask := make([]int64, maxLen)

	ids[0] = t.clsID
	mask[0] = 1
	for i, p := range pieces {
		id, ok := t.vocab[p]
		if !ok {
			id = t.unkID
		}
		ids[i+1] = id
		mask[i+1] = 1
	}
	ids[len(pieces)+1] = t.sepID
	mask[len(pieces)+1] = 1
	for i := len(pieces) + 2; i < maxLen; i++ {
		ids[i] = t.padID
	}

	return Encoding{Tokens: pieces, IDs: ids, Mask: mask}
}

// wordPieces splits text on whitespace and punctuation, then applies
// greedy longest-match WordPiece segmentation per word.
func (t *Tokenizer) wordPieces(text string) []string {
	var pieces []string
	for _, word := range splitWords(text) {
		pieces = append(pieces, t.segment(word)...)
	}
	return pieces
}

func (t *Tokenizer) segment(word string) []string {
	runes := []rune(word)
	if len(runes) > maxPiecesPerWord {
		return []string{unkToken}
	}

	var pieces []string
	start := 0
	for start < len(runes) {
		end := len(runes)
		var match string
		for end > start {
			candidate := string(runes[start:end])
			if start > 0 {
				candidate = "##" + candidate
			}
			if _, ok := t.vocab[candidate]; ok {
				match = candidate
				break
			}
			end--
		}
		if match == "" {
			// No sub-piece known: the whole word degrades to [UNK].
			return []string{unkToken}
		}
		pieces = append(pieces, match)
		start = end
	}
	return pieces
}

func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush()
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			words = append(words, string(r))
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return words
}
