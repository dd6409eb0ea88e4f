package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sedrickcz/cityvizor"
	"github.com/sedrickcz/cityvizor/adapters/googlesheets"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("example failed")
	}
}

func run() error {
	ctx := context.Background()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Store configuration; leave GOOGLE_CREDENTIALS unset to see the skip path
	config := googlesheets.Config{
		CredentialsFile: os.Getenv("GOOGLE_CREDENTIALS"),
		DocumentID:      "your-spreadsheet-id",
		ListName:        "Requests",
		AppName:         "cityvizor-example",
	}

	// Service account keys only; the default authenticator also accepts
	// authorized user credentials
	opts := []googlesheets.Option{
		googlesheets.WithLogger(logger),
		googlesheets.WithAuthenticator(googlesheets.ServiceAccountAuthenticator),
	}

	store, err := googlesheets.New(config, opts...)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	request := &cityvizor.CityRequest{
		Time:      time.Now(),
		City:      "Brno",
		Email:     "jan@example.com",
		Name:      "Jan Novák",
		Subscribe: true,
		GDPR:      true,
		IP:        "192.0.2.10",
	}

	outcome, err := store.Insert(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to insert city request: %w", err)
	}
	fmt.Printf("City request %s into %s\n", outcome, store.Range())

	if outcome == cityvizor.OutcomeSkipped {
		return nil
	}

	// Profiles live in a sheet of the same document
	config.ListName = "Profiles"
	source, err := googlesheets.NewProfileSource(config, opts...)
	if err != nil {
		return fmt.Errorf("failed to create profile source: %w", err)
	}

	catalog := cityvizor.NewCatalog(source)
	if err := catalog.Load(ctx); err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	mains, err := catalog.Query(cityvizor.Query{
		Conditions: []cityvizor.Condition{
			{Column: cityvizor.ColumnMain, Operator: cityvizor.OpEqual, Value: true},
			{Column: cityvizor.ColumnStatus, Operator: cityvizor.OpEqual, Value: string(cityvizor.StatusVisible)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to query profiles: %w", err)
	}

	fmt.Printf("%d profiles, %d visible main profiles\n", catalog.Size(), len(mains))
	for _, p := range mains {
		fmt.Printf("- %d %s (%s)\n", p.ID, p.Name, p.URL)
	}

	return nil
}
