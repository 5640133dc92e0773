// Command geopolitics runs a short, seeded demonstration of the simulation
// core: it bootstraps a small country roster and drives a fixed number of
// ticks, logging each tick's reports. It is a demo harness, not a REPL.
package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/geopolitics-core/internal/country"
	"github.com/talgya/geopolitics-core/internal/game"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	root := newRootCommand()
	if err := root.Execute(); err != nil {
		slog.Error("geopolitics: run failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var ticks int
	var tickMinutes float64
	var seed int64

	cmd := &cobra.Command{
		Use:   "geopolitics",
		Short: "Run a short, seeded demonstration of the geopolitical simulation core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(ticks, tickMinutes, seed)
		},
	}

	cmd.Flags().IntVar(&ticks, "ticks", 12, "number of ticks to simulate")
	cmd.Flags().Float64Var(&tickMinutes, "tick-minutes", 60, "simulated minutes advanced per tick")
	cmd.Flags().Int64Var(&seed, "seed", 1, "PRNG seed for reproducible runs")

	return cmd
}

func runDemo(ticks int, tickMinutes float64, seed int64) error {
	g, err := game.FromDefinitionsWithRNG(sampleRoster(), rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("bootstrapping simulation: %w", err)
	}

	slog.Info("simulation bootstrapped",
		"instance_id", g.InstanceID(),
		"countries", len(g.Countries()),
	)

	for tick := 1; tick <= ticks; tick++ {
		reports, err := g.TickMinutes(tickMinutes)
		if err != nil {
			return fmt.Errorf("tick %d: %w", tick, err)
		}

		status := g.TimeStatus()
		slog.Info("tick complete",
			"tick", tick,
			"calendar", fmt.Sprintf("%04d-%02d-%02d", status.Calendar.Year, status.Calendar.Month, status.Calendar.Day),
			"simulation_minutes", status.SimulationMinutes,
			"commodity_price", humanize.FormatFloat("#,###.##", g.CommodityPrice()),
		)
		for _, report := range reports {
			slog.Info("report", "tick", tick, "message", report)
		}
	}

	for idx, c := range g.Countries() {
		snapshot, err := g.FiscalSnapshotOf(idx)
		if err != nil {
			return err
		}
		slog.Info("country summary",
			"country", c.Name,
			"gdp", humanize.FormatFloat("#,###.##", c.GDP),
			"cash_reserve", humanize.FormatFloat("#,###.##", snapshot.CashReserve),
			"credit_rating", snapshot.CreditRating.String(),
			"stability", c.Stability,
			"approval", c.Approval,
		)
	}
	return nil
}

func sampleRoster() []country.Definition {
	return []country.Definition{
		{
			Name:               "Asteria",
			Government:         "Republic",
			PopulationMillions: 50,
			GDP:                1500,
			Stability:          60,
			Military:           55,
			Approval:           50,
			Budget:             400,
			Resources:          70,
		},
		{
			Name:               "Borealis",
			Government:         "Federation",
			PopulationMillions: 40,
			GDP:                1300,
			Stability:          55,
			Military:           60,
			Approval:           45,
			Budget:             380,
			Resources:          65,
		},
		{
			Name:               "Calderin",
			Government:         "Technocracy",
			PopulationMillions: 22,
			GDP:                900,
			Stability:          48,
			Military:           40,
			Approval:           52,
			Budget:             260,
			Resources:          110,
		},
	}
}
