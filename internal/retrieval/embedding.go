package retrieval

import (
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

// Embedding dimensionality. Small enough to stay cheap, large enough that
// hash collisions between the few hundred distinct dataset terms are rare.
const embeddingDim = 256

var tokenRe = regexp.MustCompile(`[a-z0-9]+`)

// embed builds a deterministic hashed term-frequency vector for the text.
// The same text always yields the same vector, which keeps retrieval and
// verification reproducible without any external embedding service.
func embed(text string) []float64 {
	vec := make([]float64, embeddingDim)
	tokens := tokenRe.FindAllString(strings.ToLower(text), -1)
	for _, tok := range tokens {
		if len(tok) < 3 {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(tok))
		vec[h.Sum32()%embeddingDim]++
	}
	return vec
}

// cosine returns the cosine similarity between two vectors, 0 when either
// vector is empty.
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
