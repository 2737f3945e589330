package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MJE43/monty-hall-sim/internal/engine"
	"github.com/MJE43/monty-hall-sim/internal/games"
	"github.com/MJE43/monty-hall-sim/internal/sim"
)

func statsFrom(outcomes ...games.RoundOutcome) sim.Statistics {
	t := sim.NewTally(outcomes[0].Doors)
	for _, o := range outcomes {
		t.Add(o)
	}
	return t.Statistics()
}

var (
	switchWin = games.RoundOutcome{Doors: 3, PrizeDoor: 2, InitialPick: 0, SwitchPick: 2, SwitchWon: true}
	stayWin   = games.RoundOutcome{Doors: 3, PrizeDoor: 1, InitialPick: 1, SwitchPick: 0, StayWon: true}
)

func TestPercent(t *testing.T) {
	require.Equal(t, "66.7%", Percent(2.0/3.0))
	require.Equal(t, "33.3%", Percent(1.0/3.0))
	require.Equal(t, "90.0%", Percent(0.9))
	require.Equal(t, "100.0%", Percent(1))
	require.Equal(t, "0.0%", Percent(0))
}

func TestNewDocument(t *testing.T) {
	stats := statsFrom(switchWin, switchWin, stayWin)
	doc := NewDocument("run-1", stats, true)

	require.Equal(t, "run-1", doc.RunID)
	require.EqualValues(t, 3, doc.Simulations)
	require.Equal(t, 3, doc.Doors)
	require.EqualValues(t, 2, doc.Results.Switch.Wins)
	require.EqualValues(t, 1, doc.Results.Stay.Wins)
	require.Equal(t, stats.SwitchRate, doc.Results.Switch.Rate)
	require.Equal(t, 66.7, doc.Results.Switch.Percentage)
	require.Equal(t, 66.7, doc.Results.Switch.Theoretical)
	require.Equal(t, 33.3, doc.Results.Stay.Percentage)
	require.NotNil(t, doc.Advantage)
	require.Equal(t, 2.0, *doc.Advantage)
	require.Len(t, doc.DoorDistribution, 3)
	require.EqualValues(t, 2, doc.DoorDistribution[2].Prize)
	require.EqualValues(t, 2, doc.DoorDistribution[0].InitialPick)
}

func TestWriteJSONShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewDocument("", statsFrom(switchWin, stayWin), false)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.EqualValues(t, 2, decoded["simulations"])
	require.EqualValues(t, 3, decoded["doors"])
	require.EqualValues(t, 1, decoded["advantage"])
	require.NotContains(t, decoded, "run_id")
	require.NotContains(t, decoded, "door_distribution")

	results := decoded["results"].(map[string]any)
	sw := results["switch"].(map[string]any)
	require.EqualValues(t, 1, sw["wins"])
	require.EqualValues(t, 0.5, sw["rate"])
	require.EqualValues(t, 50, sw["percentage"])
	require.Contains(t, results, "stay")
}

func TestWriteJSONUndefinedAdvantage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewDocument("", statsFrom(switchWin), false)))
	require.Contains(t, buf.String(), `"advantage": null`)
}

func TestWriteTextVerbose(t *testing.T) {
	stats, err := sim.RunSimulation(engine.NewPCGSource(5, 5), 3, 10_000)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, stats, TextOptions{}))
	out := buf.String()

	require.Contains(t, out, "Monty Hall Simulation Results:")
	require.Contains(t, out, "Games: 10,000 | Doors: 3")
	require.Contains(t, out, "- Theory: 66.7%")
	require.Contains(t, out, "- Theory: 33.3%")
	require.Contains(t, out, "x better")
	require.NotContains(t, out, "Door Distribution")
}

func TestWriteTextQuiet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, statsFrom(switchWin, switchWin, stayWin), TextOptions{Quiet: true}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, []string{
		"Doors: 3, Games: 3",
		"Switch: 66.7% (theory: 66.7%)",
		"Stay:   33.3% (theory: 33.3%)",
		"Switch advantage: 2.0x",
	}, lines)
}

func TestWriteTextUndefinedAndInterrupted(t *testing.T) {
	stats := statsFrom(switchWin)
	stats.Interrupted = true

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, stats, TextOptions{Quiet: true, Distribution: true}))
	out := buf.String()

	require.Contains(t, out, "Switch advantage: undefined")
	require.Contains(t, out, "Door Distribution:")
	require.Contains(t, out, "Interrupted")
}

func TestWriteOutcome(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutcome(&buf, switchWin))
	out := buf.String()

	require.Contains(t, out, "Prize: door 2 | Initial pick: door 0")
	require.Contains(t, out, "Host opened: 1")
	require.Contains(t, out, "Switch target: door 2")
	require.Contains(t, out, "Stay: lose | Switch: win")
}

func TestDistributionHugeDoorCountListsDrawnDoors(t *testing.T) {
	const doors = 1 << 45
	stats := statsFrom(
		games.RoundOutcome{Doors: doors, PrizeDoor: 12, InitialPick: 12, SwitchPick: 40, StayWon: true},
		games.RoundOutcome{Doors: doors, PrizeDoor: 7, InitialPick: 99, SwitchPick: 7, SwitchWon: true},
	)

	doc := NewDocument("", stats, true)
	require.Len(t, doc.DoorDistribution, 3)
	require.Equal(t, 7, doc.DoorDistribution[0].Door)
	require.EqualValues(t, 1, doc.DoorDistribution[1].Prize)
	require.EqualValues(t, 1, doc.DoorDistribution[2].InitialPick)
}
