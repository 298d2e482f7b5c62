package projection

import (
	"time"

	"github.com/aevon-lab/login-usage/internal/core/usage"
)

// QueryRequest selects the bucket range and the aggregation interval.
// Zero Start/End and empty Aggregate take the service defaults.
type QueryRequest struct {
	Start     time.Time `form:"start" json:"start"`
	End       time.Time `form:"end" json:"end"`
	Aggregate string    `form:"aggregate" json:"aggregate"`
}

// UsageResponse is the envelope returned by the usage endpoint.
type UsageResponse struct {
	Start     time.Time             `json:"start" yaml:"start"`
	End       time.Time             `json:"end" yaml:"end"`
	Aggregate string                `json:"aggregate" yaml:"aggregate"`
	Data      []usage.IntervalCount `json:"data" yaml:"data"`
}
