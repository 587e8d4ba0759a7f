package models

// Ranking is one player's placement in a round
type Ranking struct {
	PlayerID   PlayerID `json:"playerId"`
	PlayerName string   `json:"playerName"`
	Votes      int      `json:"votes"`
	Points     int      `json:"points"`
}

// RoundResult records how a round was scored
type RoundResult struct {
	RoundNumber int `json:"roundNumber"`

	// Rankings are sorted by vote count, highest first
	Rankings []Ranking `json:"rankings"`
}

// TotalPoints returns the points awarded in the round
func (r RoundResult) TotalPoints() int {
	total := 0
	for _, rk := range r.Rankings {
		total += rk.Points
	}
	return total
}

func (r RoundResult) clone() RoundResult {
	if r.Rankings != nil {
		rankings := make([]Ranking, len(r.Rankings))
		copy(rankings, r.Rankings)
		r.Rankings = rankings
	}
	return r
}
