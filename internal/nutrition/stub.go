package nutrition

import "context"

// StubClient is a deterministic Client used in tests and local development
// when no API credentials are configured. It reports 1 kcal per gram with a
// flat keto-ish macro split.
type StubClient struct{}

// Lookup returns synthetic macros derived only from the requested grams.
func (StubClient) Lookup(_ context.Context, _ string, grams uint) (Nutrients, error) {
	return Nutrients{
		Kcal:     grams,
		CarbG:    grams / 20,
		FatG:     grams / 2,
		ProteinG: grams / 10,
	}, nil
}
