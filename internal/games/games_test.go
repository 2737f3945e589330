package games

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/MJE43/monty-hall-sim/internal/engine"
)

func TestMontyHallGame(t *testing.T) {
	game := &MontyHallGame{}

	spec := game.Spec()
	if spec.ID != "montyhall" {
		t.Errorf("Expected ID 'montyhall', got '%s'", spec.ID)
	}
	if spec.MetricLabel != "switch_win" {
		t.Errorf("Expected metric label 'switch_win', got '%s'", spec.MetricLabel)
	}
	if game.FloatCount(nil) != RoundFloats {
		t.Errorf("Expected %d floats needed, got %d", RoundFloats, game.FloatCount(nil))
	}
}

func TestGameRegistry(t *testing.T) {
	game, ok := GetGame("montyhall")
	if !ok {
		t.Fatal("montyhall not registered")
	}
	if _, ok := game.(*MontyHallGame); !ok {
		t.Errorf("unexpected game type %T", game)
	}
	if _, ok := GetGame("dice"); ok {
		t.Error("unexpected game registered: dice")
	}

	ids := ListGames()
	if len(ids) != 1 || ids[0] != "montyhall" {
		t.Errorf("unexpected registry contents: %v", ids)
	}
}

func TestMontyHallEvaluateReproducible(t *testing.T) {
	game := &MontyHallGame{}
	seeds := engine.Seeds{Server: "test_server", Client: "test_client"}
	params := map[string]any{"doors": float64(5)}

	for nonce := uint64(1); nonce <= 50; nonce++ {
		a, err := game.Evaluate(seeds, nonce, params)
		if err != nil {
			t.Fatalf("nonce %d: %v", nonce, err)
		}
		b, err := game.Evaluate(seeds, nonce, params)
		if err != nil {
			t.Fatalf("nonce %d: %v", nonce, err)
		}

		oa := a.Details.(RoundOutcome)
		ob := b.Details.(RoundOutcome)
		if oa != ob {
			t.Fatalf("nonce %d: replay differs: %+v vs %+v", nonce, oa, ob)
		}
		if oa.Doors != 5 {
			t.Errorf("nonce %d: expected 5 doors, got %d", nonce, oa.Doors)
		}
		if (a.Metric == 1) != oa.SwitchWon {
			t.Errorf("nonce %d: metric %v disagrees with outcome %+v", nonce, a.Metric, oa)
		}
	}
}

func TestMontyHallEvaluateWithFloats(t *testing.T) {
	game := &MontyHallGame{}

	// prize 1, pick 1 of 3: staying wins.
	res, err := game.EvaluateWithFloats([]float64{0.5, 0.5, 0.0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Metric != 0 {
		t.Errorf("expected metric 0 for a stay win, got %v", res.Metric)
	}
	o := res.Details.(RoundOutcome)
	if o.SwitchPick != 0 || !o.StayWon {
		t.Errorf("unexpected outcome: %+v", o)
	}

	if _, err := game.EvaluateWithFloats([]float64{0.5}, nil); err == nil {
		t.Error("expected error for too few floats")
	}
	if _, err := game.EvaluateWithFloats([]float64{0.1, 0.2, 0.3}, map[string]any{"doors": 2}); err == nil {
		t.Error("expected error for 2 doors")
	}
}

func TestMontyHallDoorsParam(t *testing.T) {
	game := &MontyHallGame{}
	floats := []float64{0.1, 0.2, 0.3}

	valid := []struct {
		doors any
		want  int
	}{
		{nil, 3},
		{4, 4},
		{int64(6), 6},
		{float64(7), 7},
	}
	for _, tt := range valid {
		params := map[string]any{}
		if tt.doors != nil {
			params["doors"] = tt.doors
		}
		res, err := game.EvaluateWithFloats(floats, params)
		if err != nil {
			t.Fatalf("doors %v: %v", tt.doors, err)
		}
		if got := res.Details.(RoundOutcome).Doors; got != tt.want {
			t.Errorf("doors %v: expected %d doors, got %d", tt.doors, tt.want, got)
		}
	}

	for _, doors := range []any{3.9, math.NaN(), math.Inf(1), math.Inf(-1), 1e300, "3"} {
		_, err := game.EvaluateWithFloats(floats, map[string]any{"doors": doors})
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("doors %v: expected ErrInvalidConfiguration, got %v", doors, err)
		}
	}
}

func TestRoundOutcomeJSON(t *testing.T) {
	o := RoundOutcome{Doors: 4, PrizeDoor: 3, InitialPick: 0, SwitchPick: 3, SwitchWon: true}
	data, err := json.Marshal(o)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{`"revealed_doors":[1,2]`, `"switch_result":true`, `"stay_result":false`, `"prize_door":3`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}
}
