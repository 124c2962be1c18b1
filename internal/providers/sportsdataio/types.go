package sportsdataio

type stadiumResponse struct {
	Name  string `json:"Name"`
	City  string `json:"City"`
	State string `json:"State"`
}

type scoreResponse struct {
	ScoreID             int              `json:"ScoreID"`
	GameKey             string           `json:"GameKey"`
	Season              int              `json:"Season"`
	Week                int              `json:"Week"`
	Date                string           `json:"Date"`
	HomeTeam            string           `json:"HomeTeam"`
	AwayTeam            string           `json:"AwayTeam"`
	HomeScore           *int             `json:"HomeScore"`
	AwayScore           *int             `json:"AwayScore"`
	Quarter             string           `json:"Quarter"`
	TimeRemaining       string           `json:"TimeRemaining"`
	Possession          string           `json:"Possession"`
	HasStarted          bool             `json:"HasStarted"`
	IsInProgress        bool             `json:"IsInProgress"`
	IsOver              bool             `json:"IsOver"`
	LastPlay            string           `json:"LastPlay"`
	Channel             string           `json:"Channel"`
	PointSpread         *float64         `json:"PointSpread"`
	OverUnder           *float64         `json:"OverUnder"`
	ForecastTempLow     *int             `json:"ForecastTempLow"`
	ForecastTempHigh    *int             `json:"ForecastTempHigh"`
	ForecastWindSpeed   *int             `json:"ForecastWindSpeed"`
	ForecastDescription string           `json:"ForecastDescription"`
	StadiumDetails      *stadiumResponse `json:"StadiumDetails"`
}

type playResponse struct {
	PlayID               int    `json:"PlayID"`
	Sequence             *int   `json:"Sequence"`
	QuarterName          string `json:"QuarterName"`
	TimeRemainingMinutes *int   `json:"TimeRemainingMinutes"`
	TimeRemainingSeconds *int   `json:"TimeRemainingSeconds"`
	Down                 int    `json:"Down"`
	Distance             int    `json:"Distance"`
	YardLine             int    `json:"YardLine"`
	YardLineTerritory    string `json:"YardLineTerritory"`
	Team                 string `json:"Team"`
	Opponent             string `json:"Opponent"`
	Description          string `json:"Description"`
	Type                 string `json:"Type"`
	IsScoringPlay        bool   `json:"IsScoringPlay"`
	Updated              string `json:"Updated"`
}

type playByPlayResponse struct {
	Score *scoreResponse `json:"Score"`
	Plays []playResponse `json:"Plays"`
}

// boxScoreResponse keeps player rows loose; stat columns vary by position.
type boxScoreResponse struct {
	Score       *scoreResponse   `json:"Score"`
	PlayerGames []map[string]any `json:"PlayerGames"`
}

type playerResponse struct {
	PlayerID int    `json:"PlayerID"`
	Name     string `json:"Name"`
	Position string `json:"Position"`
	Team     string `json:"Team"`
	Status   string `json:"Status"`
	Number   int    `json:"Number"`
}

type playerPropResponse struct {
	PlayerID    int      `json:"PlayerID"`
	Name        string   `json:"Name"`
	Team        string   `json:"Team"`
	Description string   `json:"Description"`
	OverUnder   *float64 `json:"OverUnder"`
	OverPayout  *int     `json:"OverPayout"`
	UnderPayout *int     `json:"UnderPayout"`
	Sportsbook  string   `json:"Sportsbook"`
}

type oddResponse struct {
	Sportsbook      string   `json:"Sportsbook"`
	HomeMoneyLine   *int     `json:"HomeMoneyLine"`
	AwayMoneyLine   *int     `json:"AwayMoneyLine"`
	HomePointSpread *float64 `json:"HomePointSpread"`
	OverUnder       *float64 `json:"OverUnder"`
	Created         string   `json:"Created"`
}

type gameOddsResponse struct {
	ScoreID     int           `json:"ScoreId"`
	PregameOdds []oddResponse `json:"PregameOdds"`
	LiveOdds    []oddResponse `json:"LiveOdds"`
}

type metadataResponse struct {
	CurrentTime string `json:"CurrentTime"`
}
