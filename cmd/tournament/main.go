// Package main is a standalone CLI that runs the fleet-sizing
// tournament against a scenario file and prints the winning
// composition, without starting the HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/farmhaul/dispatch/internal/distance"
	"github.com/farmhaul/dispatch/internal/planner"
	"github.com/farmhaul/dispatch/internal/scenario"
	"github.com/farmhaul/dispatch/internal/simulation"
	"github.com/farmhaul/dispatch/internal/tournament"
	applogger "github.com/farmhaul/dispatch/pkg/logger"
)

func main() {
	scenarioPath := flag.String("scenario", "data/scenario.json", "path to scenario JSON document")
	flag.Parse()

	sc, err := scenario.Load(*scenarioPath)
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}

	appLogger := applogger.New()
	oracle := distance.New(distance.Config{}, appLogger)
	dailyPlanner := planner.New(oracle, appLogger)
	driver := simulation.New(dailyPlanner)
	tour := tournament.New(driver)

	result := tour.Run(context.Background(), sc)

	fmt.Printf("Winning fleet: %d small, %d large trucks\n", result.Composition.Small, result.Composition.Large)
	fmt.Printf("Net profit: %.2f\n", result.NetProfit)
	if result.Outcome != nil {
		fmt.Printf("Total transport cost: %.2f\n", result.Outcome.TotalTransportCost)
		fmt.Printf("Total penalty: %.2f\n", result.Outcome.TotalPenalty)
	}
}
