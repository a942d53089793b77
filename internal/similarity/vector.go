package similarity

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// VectorOracle serves similarity from a pre-computed word embedding table
// loaded at startup. The table is read-only after construction, so lookups
// need no locking.
type VectorOracle struct {
	vectors map[string][]float64
}

func NewVectorOracle(path string) (*VectorOracle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embeddings file %s: %w", path, err)
	}

	var vectors map[string][]float64
	if err := json.Unmarshal(data, &vectors); err != nil {
		return nil, fmt.Errorf("failed to parse embeddings file %s: %w", path, err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embeddings file %s contains no vectors", path)
	}

	normalized := make(map[string][]float64, len(vectors))
	for word, vec := range vectors {
		normalized[strings.ToLower(word)] = vec
	}

	return &VectorOracle{vectors: normalized}, nil
}

// Len reports how many words have embeddings, for startup logging and healthz.
func (o *VectorOracle) Len() int {
	if o == nil {
		return 0
	}
	return len(o.vectors)
}

// Similarity returns the cosine similarity of the stored embeddings. Words
// without an embedding score 0: the cheap lexical checks have already run by
// the time the oracle is consulted, so an unknown word is simply not a
// semantic match.
func (o *VectorOracle) Similarity(_ context.Context, a, b string) (float64, error) {
	if o == nil || len(o.vectors) == 0 {
		return 0, ErrModelUnavailable
	}
	va, ok := o.vectors[strings.ToLower(a)]
	if !ok {
		return 0, nil
	}
	vb, ok := o.vectors[strings.ToLower(b)]
	if !ok {
		return 0, nil
	}
	return Cosine(va, vb), nil
}
