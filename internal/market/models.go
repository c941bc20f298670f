package market

// Observation is one trading day of data for one instrument.
//
// Series are ordered ascending by date; halted days are simply absent.
// Fundamental and sentiment fields are optional and nil when the upstream
// provider has nothing for that day.
type Observation struct {
	Symbol   string   `json:"symbol"`
	Date     string   `json:"date"` // YYYY-MM-DD
	Open     float64  `json:"open"`
	High     float64  `json:"high"`
	Low      float64  `json:"low"`
	Close    float64  `json:"close"`
	Volume   float64  `json:"volume"`
	Turnover *float64 `json:"turnover,omitempty"`
	PERatio  *float64 `json:"pe_ratio,omitempty"`
	PBRatio  *float64 `json:"pb_ratio,omitempty"`
	ROE      *float64 `json:"roe,omitempty"`
}

// Closes extracts the close prices of a series in order.
func Closes(series []Observation) []float64 {
	closes := make([]float64, len(series))
	for i, obs := range series {
		closes[i] = obs.Close
	}
	return closes
}

// Volumes extracts the volumes of a series in order.
func Volumes(series []Observation) []float64 {
	volumes := make([]float64, len(series))
	for i, obs := range series {
		volumes[i] = obs.Volume
	}
	return volumes
}

// TruncateAfter returns the prefix of a series dated on or before the given
// date. Series are ascending, so this is the no-lookahead window for that
// date.
func TruncateAfter(series []Observation, date string) []Observation {
	n := len(series)
	for n > 0 && series[n-1].Date > date {
		n--
	}
	return series[:n]
}
