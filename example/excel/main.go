package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sedrickcz/cityvizor"
	"github.com/sedrickcz/cityvizor/adapters/excel"
)

func main() {
	ctx := context.Background()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Requests and profiles share one workbook on separate sheets
	store, err := excel.New(&excel.Config{
		FilePath:  "./example_data.xlsx",
		SheetName: "Requests",
	}, excel.WithLogger(logger))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Excel store")
	}

	// 1. Store a few requests
	fmt.Println("Storing city requests...")
	for i, city := range []string{"Praha", "Brno", "Kolín"} {
		outcome, err := store.Insert(ctx, &cityvizor.CityRequest{
			Time:  time.Now(),
			City:  city,
			Email: fmt.Sprintf("user%d@example.com", i),
			Name:  fmt.Sprintf("User %d", i),
			GDPR:  true,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to store city request")
		}
		fmt.Printf("  %s: %s\n", city, outcome)
	}

	// 2. Load the profile catalog (empty until a "Profiles" sheet exists)
	source, err := excel.NewProfileSource(&excel.Config{
		FilePath:  "./example_data.xlsx",
		SheetName: "Profiles",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create profile source")
	}

	catalog := cityvizor.NewCatalog(source)
	if err := catalog.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load profiles")
	}

	// 3. Profiles inside a bounding box around central Bohemia
	inBox, err := catalog.Query(cityvizor.Query{
		Conditions: []cityvizor.Condition{
			{Column: cityvizor.ColumnGPSX, Operator: cityvizor.OpBetween, Value: []interface{}{13.5, 15.5}},
			{Column: cityvizor.ColumnGPSY, Operator: cityvizor.OpBetween, Value: []interface{}{49.5, 50.5}},
		},
		Limit: 10,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to query profiles")
	}

	fmt.Printf("\n%d profiles loaded, %d in the bounding box\n", catalog.Size(), len(inBox))
	for _, p := range inBox {
		fmt.Printf("  %d %s [%g, %g]\n", p.ID, p.Name, p.GPSX, p.GPSY)
	}
}
