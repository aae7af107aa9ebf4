package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"boxingsim/internal/events"
	"boxingsim/internal/fight"
	"boxingsim/internal/fighter"
)

// narrate prints a minimal play-by-play from the event feed until the bus
// closes. It is a pure consumer of the stream; pacing comes from the
// engine's real-time mode, not from this reader.
func narrate(w io.Writer, feed <-chan events.Event, fA, fB *fighter.Fighter) {
	names := map[string]string{
		fA.ID.String(): fA.Name,
		fB.ID.String(): fB.Name,
	}
	name := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}

	for e := range feed {
		switch e.Type {
		case events.TypeRoundStart:
			var p events.RoundStartPayload
			if events.Decode(e, &p) == nil {
				fmt.Fprintf(w, "\n--- Round %d ---\n", p.Round)
			}
		case events.TypePunchLanded:
			var p events.PunchOutcomePayload
			if events.Decode(e, &p) == nil {
				tag := ""
				if p.IsCounter {
					tag = " (counter!)"
				}
				fmt.Fprintf(w, "[%d:%05.1f] %s lands a %s to the %s%s\n",
					e.Round, e.SimTime, name(p.Attacker), p.PunchType, p.Location, tag)
			}
		case events.TypeHurt:
			var p events.HurtPayload
			if events.Decode(e, &p) == nil {
				fmt.Fprintf(w, "[%d:%05.1f] %s is hurt!\n", e.Round, e.SimTime, name(p.FighterID))
			}
		case events.TypeKnockdown:
			var p events.KnockdownPayload
			if events.Decode(e, &p) == nil {
				fmt.Fprintf(w, "[%d:%05.1f] %s goes DOWN! (knockdown %d this round)\n",
					e.Round, e.SimTime, name(p.FighterID), p.Count)
			}
		case events.TypeCount:
			var p events.CountPayload
			if events.Decode(e, &p) == nil {
				fmt.Fprintf(w, "        ...%d...\n", p.Count)
			}
		case events.TypeRecovered:
			var p events.RecoveredPayload
			if events.Decode(e, &p) == nil {
				fmt.Fprintf(w, "[%d:%05.1f] %s beats the count\n", e.Round, e.SimTime, name(p.FighterID))
			}
		case events.TypeWarning:
			var p events.WarningPayload
			if events.Decode(e, &p) == nil {
				fmt.Fprintf(w, "[%d:%05.1f] referee warns %s (%s)\n", e.Round, e.SimTime, name(p.FighterID), p.Kind)
			}
		case events.TypePointDeduction:
			var p events.PointDeductionPayload
			if events.Decode(e, &p) == nil {
				fmt.Fprintf(w, "[%d:%05.1f] point deducted from %s (%s)\n", e.Round, e.SimTime, name(p.FighterID), p.Kind)
			}
		case events.TypeRoundEnd:
			var p events.RoundEndPayload
			if events.Decode(e, &p) == nil {
				fmt.Fprintf(w, "--- End of round %d: %d-%d, %d-%d, %d-%d ---\n", p.Round,
					p.ScoreAJudge1, p.ScoreBJudge1, p.ScoreAJudge2, p.ScoreBJudge2, p.ScoreAJudge3, p.ScoreBJudge3)
			}
		}
	}
}

// printResult renders the bout's terminal outcome and, for a decision, the
// three judges' full scorecards as a table.
func printResult(w io.Writer, result *fight.Result, fA, fB *fighter.Fighter) {
	fmt.Fprintf(w, "\n=== Result ===\n")

	winner := "none"
	switch {
	case result.WinnerID != nil && *result.WinnerID == fA.ID:
		winner = fA.Name
	case result.WinnerID != nil && *result.WinnerID == fB.ID:
		winner = fB.Name
	}

	fmt.Fprintf(w, "Method : %s", result.Method)
	if result.Reason != "" {
		fmt.Fprintf(w, " (%s)", result.Reason)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Winner : %s\n", winner)
	fmt.Fprintf(w, "Round  : %d at %.0fs\n", result.Round, result.TimeSec)
	if result.FinishingPunch != nil {
		fmt.Fprintf(w, "Finish : %s to the %s\n", result.FinishingPunch.PunchType, result.FinishingPunch.Location)
	}

	if len(result.Scorecards) == 0 {
		return
	}

	fmt.Fprintf(w, "\nScorecards (%s / %s):\n", fA.Name, fB.Name)
	t := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	t.Header("JUDGE", "ROUNDS", "TOTAL")
	for _, card := range result.Scorecards {
		rounds := ""
		for i, rs := range card.Rounds {
			if i > 0 {
				rounds += " "
			}
			rounds += fmt.Sprintf("%d-%d", rs.A, rs.B)
		}
		t.Append(
			fmt.Sprintf("Judge %d", card.JudgeID+1),
			rounds,
			fmt.Sprintf("%d-%d", card.TotalA, card.TotalB),
		)
	}
	t.Render()
}
