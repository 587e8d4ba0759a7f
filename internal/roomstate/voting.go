package roomstate

import (
	"sort"

	"github.com/KirkDiggler/sketchparty/internal/models"
)

// pointsByRank is awarded to the top three places; everyone else gets 0.
// A player nobody voted for scores nothing whatever their place.
var pointsByRank = []int{3, 2, 1}

// SubmitVote records a vote. The vote that completes the set scores the
// round inside the same transition and moves the room to results, or to
// final once the last round has been played.
func (m *Machine) SubmitVote(voterID, targetID models.PlayerID) Transition {
	return func(room *models.GameRoom) *models.GameRoom {
		return apply(room, func(next *models.GameRoom) bool {
			if !next.Status.IsVoting() {
				return false
			}
			if !next.HasPlayer(voterID) || !next.HasPlayer(targetID) {
				return false
			}
			if _, voted := next.Votes[voterID]; voted {
				return false
			}

			next.Votes[voterID] = targetID

			if next.AllVoted() {
				Tally(next)
				if next.RoundNumber >= next.Settings.TotalRounds {
					next.Status = models.RoomStatusFinal
				} else {
					next.Status = models.RoomStatusResults
				}
			}
			return true
		})
	}
}

// Rank counts votes per player and orders players by count, highest first.
// Every player is ranked, with 0 votes if nobody picked them. Ties keep join order.
func Rank(room *models.GameRoom) []models.Ranking {
	counts := make(map[models.PlayerID]int, len(room.Players))
	for _, p := range room.Players {
		counts[p.ID] = 0
	}
	for _, target := range room.Votes {
		if _, ok := counts[target]; ok {
			counts[target]++
		}
	}

	rankings := make([]models.Ranking, 0, len(room.Players))
	for _, p := range room.Players {
		rankings = append(rankings, models.Ranking{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Votes:      counts[p.ID],
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Votes > rankings[j].Votes
	})

	for i := range rankings {
		if i < len(pointsByRank) && rankings[i].Votes > 0 {
			rankings[i].Points = pointsByRank[i]
		}
	}

	return rankings
}

// Tally scores the current round into room: adds points to the cumulative
// scores and appends the round result.
func Tally(room *models.GameRoom) {
	rankings := Rank(room)

	if room.Scores == nil {
		room.Scores = map[models.PlayerID]int{}
	}
	for _, r := range rankings {
		room.Scores[r.PlayerID] += r.Points
	}

	room.RoundResults = append(room.RoundResults, models.RoundResult{
		RoundNumber: room.RoundNumber,
		Rankings:    rankings,
	})
}
