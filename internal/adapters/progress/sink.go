package progress

import (
	"github.com/trebuchet-org/tokendeploy/internal/domain/config"
	"github.com/trebuchet-org/tokendeploy/internal/usecase"
)

// NewSink picks the progress sink for the run: nothing is drawn in JSON or
// non-interactive mode
func NewSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.JSON || cfg.NonInteractive {
		return usecase.NopProgress{}
	}
	return NewSpinnerSink()
}
