package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrLookup   = "lookup"
	AttrOutcome  = "outcome"
	AttrModel    = "model"
)

// Outcome values used with AttrOutcome.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)
