package pattern

import (
	"sort"

	"go.uber.org/zap"

	"github.com/rxtech-lab/chart-patterns/internal/logger"
	"github.com/rxtech-lab/chart-patterns/internal/types"
)

// Recognizer runs every pattern family over a bar series. It carries no
// state between calls: identical input always produces identical output.
type Recognizer struct {
	config Config
	log    *logger.Logger
}

// NewRecognizer creates a recognizer with the given config. A nil logger
// falls back to a no-op logger.
func NewRecognizer(config Config, log *logger.Logger) (*Recognizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Recognizer{
		config: config,
		log:    log,
	}, nil
}

// AnalyzeAllPatterns evaluates every pattern family over the full series and
// returns the union of signals in ascending time order. Same-date signals
// keep the catalogue's pattern-family order. Series too short for a family's
// windows simply contribute no signals from that family.
func (r *Recognizer) AnalyzeAllPatterns(bars []types.Bar) ([]types.Signal, error) {
	if err := types.ValidateSeries(bars); err != nil {
		return nil, err
	}

	var signals []types.Signal

	for _, f := range families {
		found := f.detect(bars, r.config)
		r.log.Debug("pattern family evaluated",
			zap.String("family", f.name),
			zap.Int("signals", len(found)),
		)

		signals = append(signals, found...)
	}

	// Concatenation is in family order, so a stable sort by time yields the
	// documented tie-break for same-date signals.
	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Time.Before(signals[j].Time)
	})

	return signals, nil
}
