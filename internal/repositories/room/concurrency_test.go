package room

import (
	"context"
	"fmt"
	"sync"

	"github.com/KirkDiggler/sketchparty/internal/common/clock"
	"github.com/KirkDiggler/sketchparty/internal/dice"
	"github.com/KirkDiggler/sketchparty/internal/models"
	"github.com/KirkDiggler/sketchparty/internal/roomstate"
)

// runConcurrently commits one transition per goroutine and returns every result
func (s *RedisRepositoryTestSuite) runConcurrently(repo Repository, code models.RoomCode, transitions []roomstate.Transition) []*UpdateRoomOutput {
	var wg sync.WaitGroup
	outputs := make([]*UpdateRoomOutput, len(transitions))
	errs := make([]error, len(transitions))

	start := make(chan struct{})
	for i, transition := range transitions {
		wg.Add(1)
		go func(i int, transition roomstate.Transition) {
			defer wg.Done()
			<-start
			outputs[i], errs[i] = repo.UpdateRoom(context.Background(), &UpdateRoomInput{
				RoomCode:   code,
				Transition: transition,
			})
		}(i, transition)
	}
	close(start)
	wg.Wait()

	for i, err := range errs {
		s.Require().NoError(err, "update %d", i)
	}
	return outputs
}

// Every player submits and votes at the same time. Exactly one commit may
// flip drawing to voting and exactly one may score the round.
func (s *RedisRepositoryTestSuite) TestConcurrentSubmissionsAndVotes() {
	const players = 8

	repo, err := NewRedis(&Config{RedisClient: s.client, MaxRetries: 100, Clock: clock.New()})
	s.Require().NoError(err)
	machine, err := roomstate.New(&roomstate.Config{Clock: clock.New(), Roller: dice.New(&dice.Config{Seed: 3})})
	s.Require().NoError(err)

	ids := make([]models.PlayerID, players)
	for i := range ids {
		ids[i] = models.PlayerID(fmt.Sprintf("P%d", i+1))
	}

	for iteration := 0; iteration < 10; iteration++ {
		code := models.RoomCode("RACE" + roomstate.RoomCodeAlphabet[iteration:iteration+1] + "Z")
		room := s.newRoom(code)
		room.Settings.TotalRounds = 1
		for _, id := range ids[1:] {
			room.Players = append(room.Players, models.Player{ID: id, Name: string(id), JoinedAt: s.testNow})
		}
		s.Require().NoError(repo.CreateRoom(context.Background(), &CreateRoomInput{Room: room}))

		started, err := repo.UpdateRoom(context.Background(), &UpdateRoomInput{RoomCode: code, Transition: machine.StartRound("P1")})
		s.Require().NoError(err)
		s.Require().Equal(models.RoomStatusDrawing, started.Room.Status)

		submissions := make([]roomstate.Transition, 0, players)
		for _, id := range ids {
			submissions = append(submissions, machine.SubmitDrawing(id, "drawing by "+string(id)))
		}

		flips := 0
		for _, out := range s.runConcurrently(repo, code, submissions) {
			s.True(out.Changed)
			if out.Previous.Status == models.RoomStatusDrawing && out.Room.Status == models.RoomStatusVoting {
				flips++
			}
		}
		s.Equal(1, flips, "iteration %d", iteration)

		// everyone votes for P1, P1 votes for P2
		votes := make([]roomstate.Transition, 0, players)
		for _, id := range ids {
			target := models.PlayerID("P1")
			if id == "P1" {
				target = "P2"
			}
			votes = append(votes, machine.SubmitVote(id, target))
		}

		scored := 0
		for _, out := range s.runConcurrently(repo, code, votes) {
			s.True(out.Changed)
			if out.Previous.Status == models.RoomStatusVoting && out.Room.Status == models.RoomStatusFinal {
				scored++
			}
		}
		s.Equal(1, scored, "iteration %d", iteration)

		final, err := repo.GetRoom(context.Background(), &GetRoomInput{RoomCode: code})
		s.Require().NoError(err)
		s.Equal(models.RoomStatusFinal, final.Status)
		s.Len(final.RoundResults, 1)
		s.Len(final.Votes, players)
		s.Equal(3, final.Scores["P1"])
		s.Equal(2, final.Scores["P2"])
		s.Equal(1, final.RoundNumber)
	}
}
