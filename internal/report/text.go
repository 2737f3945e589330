package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MJE43/monty-hall-sim/internal/games"
	"github.com/MJE43/monty-hall-sim/internal/sim"
)

// TextOptions controls the human-readable report.
type TextOptions struct {
	Quiet        bool
	Distribution bool
}

// Undefined is printed in place of an advantage ratio with no stay wins.
const Undefined = "undefined"

var printer = message.NewPrinter(language.English)

// WriteText renders stats the way the command line prints them.
func WriteText(w io.Writer, stats sim.Statistics, opts TextOptions) error {
	var b strings.Builder

	switchPct := Percent(stats.SwitchRate)
	stayPct := Percent(stats.StayRate)
	theoSwitch := Percent(stats.TheoreticalSwitchRate)
	theoStay := Percent(stats.TheoreticalStayRate)

	if opts.Quiet {
		printer.Fprintf(&b, "Doors: %d, Games: %d\n", stats.Doors, stats.TotalGames)
		fmt.Fprintf(&b, "Switch: %s (theory: %s)\n", switchPct, theoSwitch)
		fmt.Fprintf(&b, "Stay:   %s (theory: %s)\n", stayPct, theoStay)
		fmt.Fprintf(&b, "Switch advantage: %s\n", Advantage(stats, "x"))
	} else {
		b.WriteString("\nMonty Hall Simulation Results:\n")
		b.WriteString(strings.Repeat("=", 50) + "\n")
		printer.Fprintf(&b, "Games: %d | Doors: %d\n", stats.TotalGames, stats.Doors)
		printer.Fprintf(&b, "Switch Strategy: %d wins (%s) - Theory: %s\n", stats.SwitchWins, switchPct, theoSwitch)
		printer.Fprintf(&b, "Stay Strategy:   %d wins (%s) - Theory: %s\n", stats.StayWins, stayPct, theoStay)
		fmt.Fprintf(&b, "Switch Advantage: %s\n", Advantage(stats, "x better"))
	}

	if opts.Distribution {
		writeDistribution(&b, stats)
	}
	if stats.Interrupted {
		b.WriteString("Interrupted: results cover completed rounds only\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeDistribution(b *strings.Builder, stats sim.Statistics) {
	expected := Percent(stats.ExpectedDoorShare())
	b.WriteString("\nDoor Distribution:\n")
	fmt.Fprintf(b, "%-6s %-14s %-14s %s\n", "Door", "Car Location", "Player Choice", "Expected")
	for _, d := range stats.DistributionDoors() {
		fmt.Fprintf(b, "%-6d %-14s %-14s %s\n",
			d,
			Percent(share(stats.PrizeDoorCounts[d], stats.TotalGames)),
			Percent(share(stats.InitialPickCounts[d], stats.TotalGames)),
			expected)
	}
}

func share(n, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

// Percent formats a [0, 1] rate as a one-decimal percentage, e.g. "66.7%".
func Percent(rate float64) string {
	return percentDecimal(rate).StringFixed(1) + "%"
}

// Advantage formats the advantage ratio with one decimal and suffix, or
// Undefined.
func Advantage(stats sim.Statistics, suffix string) string {
	if !stats.HasAdvantage() {
		return Undefined
	}
	return decimal.NewFromFloat(stats.AdvantageRatio).StringFixed(1) + suffix
}

// WriteOutcome describes a single round.
func WriteOutcome(w io.Writer, o games.RoundOutcome) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Doors: %d | Prize: door %d | Initial pick: door %d\n", o.Doors, o.PrizeDoor, o.InitialPick)
	fmt.Fprintf(&b, "Host opened: %s\n", joinDoors(o.RevealedDoors()))
	fmt.Fprintf(&b, "Switch target: door %d\n", o.SwitchPick)
	fmt.Fprintf(&b, "Stay: %s | Switch: %s\n", winLose(o.StayWon), winLose(o.SwitchWon))
	_, err := io.WriteString(w, b.String())
	return err
}

func joinDoors(doors []int) string {
	if len(doors) == 0 {
		return "none"
	}
	parts := make([]string, len(doors))
	for i, d := range doors {
		parts[i] = fmt.Sprint(d)
	}
	return strings.Join(parts, ", ")
}

func winLose(won bool) string {
	if won {
		return "win"
	}
	return "lose"
}
