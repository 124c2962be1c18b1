package sportsdataio

import "time"

const (
	providerName = "sportsdataio"

	defaultBaseURL     = "https://api.sportsdata.io/v3/nfl"
	defaultSeason      = "2024REG"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512

	apiKeyHeader = "Ocp-Apim-Subscription-Key"

	// SportsDataIO timestamps carry no offset and are Eastern local time.
	timestampLayout = "2006-01-02T15:04:05"
	requestDate     = "2006-Jan-02"
	inputDate       = "2006-01-02"
)
