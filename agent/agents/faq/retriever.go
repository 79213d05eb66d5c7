package faq

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	contractx "github.com/assessor-ai/assessor/agent/contract"
)

const (
	chunkSize    = 700
	chunkOverlap = 150
	topChunks    = 6
)

// FileRetriever serves chunks of a plain-text FAQ document ranked by
// lexical overlap with the question. Chunking happens once at load time;
// Retrieve is read-only and safe for concurrent use.
type FileRetriever struct {
	chunks []string
}

var _ contractx.ContextRetriever = (*FileRetriever)(nil)

func NewFileRetriever(path string) (*FileRetriever, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("faq: read document %s: %w", path, err)
	}
	return &FileRetriever{chunks: splitChunks(string(raw))}, nil
}

func (r *FileRetriever) Retrieve(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	terms := tokenize(question)
	if len(terms) == 0 {
		return "", nil
	}

	type scored struct {
		chunk string
		score int
		pos   int
	}
	var ranked []scored
	for i, chunk := range r.chunks {
		lower := strings.ToLower(chunk)
		score := 0
		for term := range terms {
			if strings.Contains(lower, term) {
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{chunk: chunk, score: score, pos: i})
		}
	}
	if len(ranked) == 0 {
		return "", nil
	}

	// Stable selection sort keeps document order among equal scores,
	// which keeps neighboring chunks adjacent in the output.
	for i := 0; i < len(ranked) && i < topChunks; i++ {
		best := i
		for j := i + 1; j < len(ranked); j++ {
			if ranked[j].score > ranked[best].score {
				best = j
			}
		}
		ranked[i], ranked[best] = ranked[best], ranked[i]
	}
	if len(ranked) > topChunks {
		ranked = ranked[:topChunks]
	}

	parts := make([]string, 0, len(ranked))
	for _, s := range ranked {
		parts = append(parts, strings.TrimSpace(s.chunk))
	}
	return strings.Join(parts, "\n\n"), nil
}

func splitChunks(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	step := chunkSize - chunkOverlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}

func tokenize(text string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len([]rune(field)) < 3 {
			continue
		}
		terms[field] = struct{}{}
	}
	return terms
}
