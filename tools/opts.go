package tools

import (
	"log/slog"

	"github.com/dkovari/spacescan/rank"
)

// Tool argument defaults, matching the documented tool schemas.
const (
	defaultTopN     = 20
	defaultTTLHours = 24
)

// rankOptions resolves optional tool arguments onto rank.Options. Pointer
// fields distinguish "omitted" from an explicit zero: top_n=0 legitimately
// requests an empty result, while a missing top_n means 20.
func rankOptions(topN *int, useIndex *bool, reindex bool, indexTTL *int, logger *slog.Logger) rank.Options {
	opts := rank.Options{
		TopN:         defaultTopN,
		UseIndex:     true,
		ForceReindex: reindex,
		TTLHours:     defaultTTLHours,
		Logger:       logger,
	}
	if topN != nil {
		opts.TopN = *topN
	}
	if useIndex != nil {
		opts.UseIndex = *useIndex
	}
	if indexTTL != nil {
		opts.TTLHours = *indexTTL
	}
	return opts
}
