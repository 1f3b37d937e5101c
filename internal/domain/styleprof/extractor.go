package styleprof

import "context"

// Extractor turns one raw email body into a feature Sample. Implementations
// range from the built-in lexical heuristics to an external NLP or LLM
// pipeline; the engine treats the function as opaque and only requires that
// returned metric values are finite.
type Extractor interface {
	Extract(ctx context.Context, body string) (Sample, error)
}
