package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jaganpon/auction/go/clients/auctionapi"
	"github.com/jaganpon/auction/go/internal/models"
	"github.com/jaganpon/auction/go/internal/store"
)

// Fixture mirrors the seed JSON layout: one tournament with its teams and
// unassigned players.
type Fixture struct {
	Tournament string `json:"tournament"`
	Teams      []struct {
		Name        string          `json:"name"`
		TotalBudget decimal.Decimal `json:"total_budget"`
	} `json:"teams"`
	Players []struct {
		EmpID         string `json:"emp_id"`
		Name          string `json:"name"`
		Type          string `json:"type"`
		ImageFilename string `json:"image_filename"`
	} `json:"players"`
}

func main() {
	ctx := context.Background()

	path := flag.String("fixture", "go/internal/assets/auction_seed.json", "path to seed fixture")
	baseURL := flag.String("backend", "http://localhost:8080", "auction backend base URL")
	token := flag.String("token", "", "bearer token for the backend")
	flag.Parse()

	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read fixture: %v\n", err)
		os.Exit(1)
	}
	var fixture Fixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal fixture: %v\n", err)
		os.Exit(1)
	}

	client := auctionapi.NewClient(*baseURL, *token)

	tournament, err := client.CreateTournament(ctx, store.CreateTournamentRequest{Name: fixture.Tournament})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create tournament: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created tournament %s (%s)\n", tournament.Name, tournament.ID)

	inserted, errs := 0, 0
	for _, team := range fixture.Teams {
		_, err := client.CreateTeam(ctx, store.CreateTeamRequest{
			TournamentID: tournament.ID,
			Name:         team.Name,
			TotalBudget:  team.TotalBudget,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "create team %s: %v\n", team.Name, err)
			errs++
			continue
		}
		inserted++
	}
	fmt.Printf("Teams seed: total=%d inserted=%d errors=%d\n", len(fixture.Teams), inserted, errs)

	inserted, errs = 0, 0
	for _, player := range fixture.Players {
		_, err := client.CreatePlayer(ctx, store.CreatePlayerRequest{
			TournamentID:  tournament.ID,
			EmpID:         player.EmpID,
			Name:          player.Name,
			Type:          models.PlayerType(player.Type),
			ImageFilename: player.ImageFilename,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "create player %s: %v\n", player.EmpID, err)
			errs++
			continue
		}
		inserted++
	}
	fmt.Printf("Players seed: total=%d inserted=%d errors=%d\n", len(fixture.Players), inserted, errs)
}
