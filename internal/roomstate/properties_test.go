package roomstate

import (
	"fmt"

	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/google/go-cmp/cmp"
)

// Applying a transition a second time with the same input, as a retried
// transaction would, must not change the result.
func (s *MachineTestSuite) TestRetriedTransitionsAreIdempotent() {
	lobby := s.lobby("P2", "P3")
	drawing := s.drawing("P2", "P3")
	voting := s.voting("P2", "P3")
	lastVote := s.machine.SubmitVote("P2", "P3")(s.machine.SubmitVote(s.host, "P3")(voting))

	cases := []struct {
		name string
		room *models.GameRoom
		fn   Transition
	}{
		{"join", lobby, s.machine.Join("P4", "P4")},
		{"ready up", lobby, s.machine.ReadyUp("P2")},
		{"start round", lobby, s.machine.StartRound(s.host)},
		{"player ready", drawing, s.machine.PlayerReady("P2")},
		{"submit drawing", drawing, s.machine.SubmitDrawing("P2", "d")},
		{"submit vote", voting, s.machine.SubmitVote("P2", "P3")},
		{"completing vote", lastVote, s.machine.SubmitVote("P3", "P2")},
		{"end game", drawing, s.machine.EndGame(s.host)},
		{"upload image", drawing, s.machine.UploadImage("P3", "https://img")},
	}

	for _, tc := range cases {
		once := tc.fn(tc.room)
		twice := tc.fn(once)
		s.Empty(cmp.Diff(once, twice), tc.name)
	}
}

func (s *MachineTestSuite) TestRetriedCompletingVoteDoesNotDoubleCount() {
	room := s.voting("P2", "P3")
	room = s.machine.SubmitVote(s.host, "P2")(room)
	room = s.machine.SubmitVote("P2", "P2")(room)

	last := s.machine.SubmitVote("P3", s.host)
	once := last(room)
	twice := last(once)

	s.Len(twice.RoundResults, 1)
	s.Equal(3, twice.Scores["P2"])
	s.Equal(once.Scores, twice.Scores)
}

// permutations returns every ordering of ids
func permutations(ids []models.PlayerID) [][]models.PlayerID {
	if len(ids) <= 1 {
		return [][]models.PlayerID{append([]models.PlayerID{}, ids...)}
	}
	var out [][]models.PlayerID
	for i := range ids {
		rest := make([]models.PlayerID, 0, len(ids)-1)
		rest = append(rest, ids[:i]...)
		rest = append(rest, ids[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]models.PlayerID{ids[i]}, p...))
		}
	}
	return out
}

// Whatever order N submissions commit in, exactly one of the resulting
// documents flips the room to voting and it is the last one.
func (s *MachineTestSuite) TestExactlyOneSubmissionFlipsToVoting() {
	start := s.drawing("P2", "P3", "P4")
	ids := []models.PlayerID{"P1", "P2", "P3", "P4"}

	for _, order := range permutations(ids) {
		room := start
		flips := 0
		for i, id := range order {
			next := s.machine.SubmitDrawing(id, "d")(room)
			if room.Status.IsDrawing() && next.Status.IsVoting() {
				flips++
				s.Equal(len(order)-1, i, fmt.Sprint(order))
			} else {
				s.Equal(models.RoomStatusDrawing, next.Status, fmt.Sprint(order))
			}
			room = next
		}
		s.Equal(1, flips, fmt.Sprint(order))
	}
}

// Two voters race to complete the set. The loser is re-run against the
// already scored document and must leave it alone.
func (s *MachineTestSuite) TestRacingFinalVotes_OnlyOneScores() {
	room := s.voting("P2", "P3", "P4")
	room = s.machine.SubmitVote(s.host, "P2")(room)
	room = s.machine.SubmitVote("P2", "P3")(room)

	voteP3 := s.machine.SubmitVote("P3", "P2")
	voteP4 := s.machine.SubmitVote("P4", "P2")

	// both read the same snapshot; P4 commits first
	afterP4 := voteP4(room)
	s.Equal(models.RoomStatusVoting, afterP4.Status)

	// P3's attempt on the stale snapshot fails to commit; the retry sees P4's vote
	committed := voteP3(afterP4)
	s.Equal(models.RoomStatusResults, committed.Status)
	s.Len(committed.RoundResults, 1)

	// a further retry of either vote on the scored room is a no-op
	s.Same(committed, voteP3(committed))
	s.Same(committed, voteP4(committed))
}

// Points per round are non-negative, at most 3+2+1, exactly 6 once three
// players have votes, and cumulative scores equal the sum of round points.
func (s *MachineTestSuite) TestScoreConservation() {
	room := s.lobby("P2", "P3", "P4")
	room = s.machine.UpdateSettings(s.host, models.Settings{TimerDuration: 60, TotalRounds: 3})(room)

	voteSets := []map[models.PlayerID]models.PlayerID{
		{"P1": "P2", "P2": "P3", "P3": "P4", "P4": "P2"},
		{"P1": "P1", "P2": "P1", "P3": "P1", "P4": "P1"},
		{"P1": "P4", "P2": "P4", "P3": "P2", "P4": "P3"},
	}

	for round, votes := range voteSets {
		room = s.machine.StartRound(s.host)(room)
		for _, p := range room.Players {
			room = s.machine.SubmitDrawing(p.ID, "d")(room)
		}
		for _, p := range room.Players {
			room = s.machine.SubmitVote(p.ID, votes[p.ID])(room)
		}

		result := room.RoundResults[round]
		s.GreaterOrEqual(result.TotalPoints(), 0)
		s.LessOrEqual(result.TotalPoints(), 6)

		distinct := map[models.PlayerID]bool{}
		for _, target := range votes {
			distinct[target] = true
		}
		if len(distinct) >= 3 {
			s.Equal(6, result.TotalPoints())
		}

		if round < len(voteSets)-1 {
			s.Equal(models.RoomStatusResults, room.Status)
			room = s.machine.NextRound(s.host)(room)
		}
	}
	s.Equal(models.RoomStatusFinal, room.Status)

	for _, p := range room.Players {
		sum := 0
		for _, rr := range room.RoundResults {
			for _, rk := range rr.Rankings {
				if rk.PlayerID == p.ID {
					sum += rk.Points
				}
			}
		}
		s.Equal(sum, room.Scores[p.ID], string(p.ID))
	}
}

func (s *MachineTestSuite) TestPlayerWhoNeverVotedIsStillRanked() {
	room := s.voting("P2", "P3")
	room = s.machine.SubmitVote(s.host, "P2")(room)
	room = s.machine.SubmitVote("P2", "P2")(room)
	room = s.machine.SubmitVote("P3", "P2")(room)

	rankings := room.RoundResults[0].Rankings
	s.Len(rankings, 3)
	found := false
	for _, rk := range rankings {
		if rk.PlayerID == "P3" {
			found = true
			s.Equal(0, rk.Votes)
		}
	}
	s.True(found)
}

func (s *MachineTestSuite) TestRoundNumberMonotonic() {
	room := s.lobby("P2")
	room = s.machine.UpdateSettings(s.host, models.Settings{TimerDuration: 60, TotalRounds: 4})(room)

	for want := 1; want <= 4; want++ {
		before := room.RoundNumber
		room = s.machine.StartRound(s.host)(room)
		s.Equal(before+1, room.RoundNumber)
		s.Equal(want, room.RoundNumber)

		// a second start inside the round does not bump it again
		s.Equal(want, s.machine.StartRound(s.host)(room).RoundNumber)

		room = s.machine.SubmitDrawing(s.host, "d")(room)
		room = s.machine.SubmitDrawing("P2", "d")(room)
		room = s.machine.SubmitVote(s.host, "P2")(room)
		room = s.machine.SubmitVote("P2", s.host)(room)
		if want < 4 {
			room = s.machine.NextRound(s.host)(room)
			s.Equal(want, room.RoundNumber)
		}
	}

	s.Equal(models.RoomStatusFinal, room.Status)
	room = s.machine.ResetGame(s.host)(room)
	s.Equal(0, room.RoundNumber)
}
