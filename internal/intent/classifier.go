package intent

import (
	"strings"

	"go.uber.org/zap"
)

// Classifier resolves user text to an Intent by scanning an ordered rule
// table. It holds no mutable state after construction and is safe for
// concurrent use.
type Classifier struct {
	rules  []rule
	logger *zap.Logger
}

func NewClassifier(logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		rules:  defaultRules,
		logger: logger,
	}
}

// Classify returns the first intent whose pattern matches the lower-cased
// input. It is total: empty or unmatched text yields the default intent,
// never an error.
func (c *Classifier) Classify(text string) Intent {
	lowered := strings.ToLower(text)

	for _, r := range c.rules {
		if r.re.MatchString(lowered) {
			c.logger.Debug("Intent classified",
				zap.String("intent", r.intent.String()),
				zap.String("pattern", r.re.String()),
			)
			return r.intent
		}
	}

	c.logger.Debug("Intent classified",
		zap.String("intent", Default.String()),
		zap.Bool("fallback", true),
	)
	return Default
}
