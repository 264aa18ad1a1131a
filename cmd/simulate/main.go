// cmd/simulate runs the engine headless: a fixed number of waves with a
// simple greedy spending policy, printing one report line per wave. Useful
// for balance sweeps; two invocations with the same flags print identical
// output.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go-wave-defense/internal/app"
	"go-wave-defense/internal/component"
	"go-wave-defense/internal/config"
	"go-wave-defense/internal/defs"
	"go-wave-defense/internal/event"
	"go-wave-defense/internal/state"
)

func main() {
	var (
		waves       = flag.Int("waves", 50, "number of waves to simulate")
		tier        = flag.String("tier", "high", "quality tier: low, medium or high")
		timeScale   = flag.Int("speed", 3, "time scale 1-3")
		balancePath = flag.String("balance", "", "optional balance YAML override")
		statePath   = flag.String("state", "", "optional state record to resume from")
		outPath     = flag.String("out", "", "write the final state record here")
		spend       = flag.Bool("spend", true, "greedily buy damage and fire-rate upgrades between waves")
	)
	flag.Parse()

	bal := config.DefaultBalance()
	if *balancePath != "" {
		loaded, err := config.LoadBalance(*balancePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load balance: %v\n", err)
			os.Exit(1)
		}
		bal = loaded
	}

	game := app.NewGame(bal, app.WithQualityTier(*tier))
	game.SetTimeScale(*timeScale)

	if *statePath != "" {
		raw, err := os.ReadFile(*statePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read state: %v\n", err)
			os.Exit(1)
		}
		gs, err := state.Decode(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "decode state: %v\n", err)
			os.Exit(1)
		}
		game.SetSnapshot(gs, app.ApplyHard)
	}

	over := false
	game.Dispatcher().Subscribe(event.GameOver, event.ListenerFunc(func(e event.Event) {
		over = true
		summary := e.Data.(app.GameOverSummary)
		fmt.Printf("game over on wave %d after %d kills\n", summary.Wave, summary.Stats.Kills)
	}))
	game.Dispatcher().Subscribe(event.WaveCompleted, event.ListenerFunc(func(e event.Event) {
		r := e.Data.(*app.WaveReport)
		fmt.Printf("wave %3d  killed %3d/%3d  ratio %.2f  threshold %.2f  penalty %.2f  gold %+8.1f  hp %5.1f\n",
			r.Wave, r.Killed, r.SpawnCount, r.KillRatio, r.Threshold, r.PenaltyFactor, r.RewardGold, r.BaseHealth)
	}))

	for i := 0; i < *waves && !over; i++ {
		if *spend {
			game.BuyUpgrade(defs.TrackDamage, app.BuyMax)
			game.BuyUpgrade(defs.TrackFireRate, app.BuyMax)
		}
		if !game.ContinueNextWave() {
			break
		}
		// Feed wall-clock-sized deltas until the wave resolves.
		for game.Phase() == component.PhaseSpawningAndActive {
			game.Tick(config.FixedStep * 4)
		}
	}

	if *outPath != "" {
		raw, err := state.Encode(game.Snapshot().State)
		if err != nil {
			fmt.Fprintf(os.Stderr, "encode state: %v\n", err)
			os.Exit(1)
		}
		var pretty json.RawMessage = raw
		out, _ := json.MarshalIndent(pretty, "", "  ")
		if err := os.WriteFile(*outPath, out, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write state: %v\n", err)
			os.Exit(1)
		}
	}
}
