package main

import (
	"context"
	"flag"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sedrickcz/cityvizor"
	"github.com/sedrickcz/cityvizor/adapters/excel"
	"github.com/sedrickcz/cityvizor/adapters/googlesheets"
	"github.com/sedrickcz/cityvizor/internal/config"
	"github.com/sedrickcz/cityvizor/internal/handler"
	"github.com/sedrickcz/cityvizor/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create logger")
	}
	log.Logger = logger

	store, err := newStore(cfg, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create city request store")
	}

	var profiles *handler.ProfileHandler
	if source, err := newProfileSource(cfg, logger); err != nil {
		log.Fatal().Err(err).Msg("cannot create profile source")
	} else if source != nil {
		catalog := cityvizor.NewCatalog(source)
		if err := catalog.Load(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("cannot load profiles")
		}
		logger.Info().Int("profiles", catalog.Size()).Msg("Profile catalog ready")
		profiles = handler.NewProfileHandler(catalog)
	}

	if logger.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := handler.NewRouter(handler.NewCityRequestHandler(store, logger, nil), profiles, cfg.Server.TrustedProxies)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create router")
	}

	logger.Info().Str("address", cfg.Server.Address).Str("store", cfg.Store.Backend).Msg("Listening")
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newStore(cfg config.Config, logger zerolog.Logger) (cityvizor.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendExcel:
		return excel.New(&excel.Config{
			FilePath:  cfg.Excel.File,
			SheetName: cfg.Excel.Sheet,
		}, excel.WithLogger(logger))
	default:
		return googlesheets.New(googlesheets.Config{
			CredentialsFile: cfg.Google.Credentials,
			DocumentID:      cfg.Google.DocumentID,
			ListName:        cfg.Google.ListName,
			AppName:         cfg.Google.AppName,
		}, googlesheets.WithLogger(logger))
	}
}

// newProfileSource returns nil when no profile backend is configured
func newProfileSource(cfg config.Config, logger zerolog.Logger) (cityvizor.ProfileSource, error) {
	switch cfg.Profiles.Backend {
	case config.BackendGoogleSheets:
		return googlesheets.NewProfileSource(googlesheets.Config{
			CredentialsFile: cfg.Google.Credentials,
			DocumentID:      cfg.Google.DocumentID,
			ListName:        cfg.Google.ProfilesSheet,
			AppName:         cfg.Google.AppName,
		}, googlesheets.WithLogger(logger))
	case config.BackendExcel:
		return excel.NewProfileSource(&excel.Config{
			FilePath:  cfg.Excel.File,
			SheetName: cfg.Excel.ProfilesSheet,
		})
	default:
		return nil, nil
	}
}
