// README: Command-line trip cost estimator running the same pipeline as the API once.
//
// Usage:
//
//	tripcost estimate --from Delhi --to Jaipur --vehicle truck --mileage 4 --km-per-day 300
//	tripcost estimate --start-coord 28.61,77.20 --dest-coord 26.91,75.78 --vehicle car --mileage 12 --km-per-day 400 --json
//	tripcost providers
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/paulmach/orb"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"tripcost/internal/config"
	"tripcost/internal/geo"
	"tripcost/internal/infra"
	"tripcost/internal/modules/expense"
	"tripcost/internal/service"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "tripcost",
		Usage:   "Estimate road trip cost: tolls, fuel and driver expenses",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Value:   "development",
				Usage:   "Logging environment (production logs JSON)",
				EnvVars: []string{"TRIPCOST_ENV"},
			},
		},
		Commands: []*cli.Command{
			estimateCommand(),
			providersCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func estimateCommand() *cli.Command {
	return &cli.Command{
		Name:  "estimate",
		Usage: "Estimate the cost of one trip",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "Start place name"},
			&cli.StringFlag{Name: "to", Usage: "Destination place name"},
			&cli.StringFlag{Name: "start-coord", Usage: "Start coordinate as lat,lon"},
			&cli.StringFlag{Name: "dest-coord", Usage: "Destination coordinate as lat,lon"},
			&cli.StringFlag{Name: "vehicle", Aliases: []string{"v"}, Usage: "Vehicle type (car, lcv, bus, truck, multi axle, ...)", Required: true},
			&cli.Float64Flag{Name: "mileage", Aliases: []string{"m"}, Usage: "Kilometres per litre", Required: true},
			&cli.Float64Flag{Name: "km-per-day", Usage: "Kilometres driven per day", Required: true},
			&cli.StringFlag{Name: "fuel-type", Value: "petrol", Usage: "Fuel type key in the price dataset"},
			&cli.Float64Flag{Name: "fuel-price", Usage: "Fuel price per litre"},
			&cli.Float64Flag{Name: "fuel-cost", Usage: "Total fuel spend, overrides --fuel-price"},
			&cli.Float64Flag{Name: "da-per-day", Usage: "Driver daily allowance"},
			&cli.Float64Flag{Name: "border-expense"},
			&cli.Float64Flag{Name: "loading-unloading"},
			&cli.Float64Flag{Name: "tyre"},
			&cli.Float64Flag{Name: "incentive"},
			&cli.Float64Flag{Name: "additional-cost"},
			&cli.StringFlag{Name: "provider", Aliases: []string{"p"}, Usage: "Maps provider (ola, ors, google); default from TRIPCOST_MAPS_PROVIDER"},
			&cli.BoolFlag{Name: "json", Usage: "Print the breakdown as JSON"},
		},
		Action: runEstimate,
	}
}

func providersCommand() *cli.Command {
	return &cli.Command{
		Name:  "providers",
		Usage: "List the maps providers with configured API keys",
		Action: func(c *cli.Context) error {
			rt, _, err := bootstrap(c)
			if err != nil {
				return err
			}
			defer rt.Close()
			for _, name := range rt.Providers.Names() {
				marker := " "
				if name == rt.Providers.Default() {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, name)
			}
			return nil
		},
	}
}

func bootstrap(c *cli.Context) (*service.Runtime, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := infra.NewLogger(c.String("env"))
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	rt, err := service.Bootstrap(c.Context, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return rt, logger, nil
}

func runEstimate(c *cli.Context) error {
	req, err := requestFromFlags(c)
	if err != nil {
		return err
	}

	rt, logger, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer rt.Close()
	defer func() { _ = logger.Sync() }()

	out, err := rt.Pipeline.Estimate(c.Context, req)
	if err != nil {
		return err
	}
	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	printBreakdown(out)
	return nil
}

func requestFromFlags(c *cli.Context) (service.TripCostRequest, error) {
	req := service.TripCostRequest{
		Start:       c.String("from"),
		Destination: c.String("to"),
		VehicleType: c.String("vehicle"),
		Mileage:     c.Float64("mileage"),
		FuelType:    strings.ToLower(c.String("fuel-type")),
		KmPerDay:    c.Float64("km-per-day"),
		Provider:    strings.ToLower(c.String("provider")),
		Extras: expense.Extras{
			BorderExpense:    c.Float64("border-expense"),
			LoadingUnloading: c.Float64("loading-unloading"),
			Tyre:             c.Float64("tyre"),
			Incentive:        c.Float64("incentive"),
			DAPerDay:         c.Float64("da-per-day"),
			AdditionalCost:   c.Float64("additional-cost"),
		},
	}
	for flag, dst := range map[string]**orb.Point{"start-coord": &req.StartCoord, "dest-coord": &req.DestCoord} {
		if !c.IsSet(flag) {
			continue
		}
		p, err := parseCoord(c.String(flag))
		if err != nil {
			return req, fmt.Errorf("--%s: %w", flag, err)
		}
		*dst = &p
	}
	if c.IsSet("fuel-price") {
		v := c.Float64("fuel-price")
		req.FuelPrice = &v
	}
	if c.IsSet("fuel-cost") {
		v := c.Float64("fuel-cost")
		req.FuelCost = &v
	}
	return req, nil
}

func parseCoord(s string) (orb.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("want lat,lon, got %q", s)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, err
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, err
	}
	p := geo.OrderLatLon(a, b)
	if !geo.ValidCoordinate(p.Lat(), p.Lon()) {
		return orb.Point{}, fmt.Errorf("coordinate %q out of range", s)
	}
	return p, nil
}

func printBreakdown(b *service.ExpenseBreakdown) {
	s := b.TripSummary
	fmt.Printf("%s -> %s (%s, via %s)\n", s.From, s.To, s.VehicleType, s.Provider)
	fmt.Printf("%.2f km, %.2f h, %d day(s)\n\n", s.DistanceKm, s.DurationHours, s.JourneyTimeDays)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if len(b.Tolls.TollDetails) > 0 {
		fmt.Fprintln(w, "TOLL PLAZA\tFEE\tOFF ROUTE (km)")
		for _, t := range b.Tolls.TollDetails {
			fmt.Fprintf(w, "%s\t%.2f\t%.2f\n", t.Name, t.Fee, t.DistanceFromRouteKm)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "ITEM\tAMOUNT")
	fmt.Fprintf(w, "Tolls\t%.2f\n", b.FinalCost.Toll)
	for _, r := range b.Fuel.Refuels {
		fmt.Fprintf(w, "Fuel (%.2f L @ %.2f, %s)\t%.2f\n", r.LitresNeeded, r.PricePerLitre, r.Source, r.Cost)
	}
	fmt.Fprintf(w, "Driver allowance\t%.2f\n", b.Extras.DATripAmount)
	fmt.Fprintf(w, "Other extras\t%.2f\n", b.Extras.TotalExtras-b.Extras.DATripAmount)
	fmt.Fprintf(w, "TOTAL\t%.2f\n", b.FinalCost.TotalTripCost)
	_ = w.Flush()
}
