package googlesheets

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Option customises a Store or ProfileSource
type Option func(*client)

// WithLogger sets the logger (default: the global zerolog logger)
func WithLogger(logger zerolog.Logger) Option {
	return func(c *client) { c.logger = logger }
}

// WithAuthenticator replaces DefaultAuthenticator
func WithAuthenticator(authenticate Authenticator) Option {
	return func(c *client) { c.authenticate = authenticate }
}

// WithTransport sets the HTTP transport shared by every API call
func WithTransport(transport http.RoundTripper) Option {
	return func(c *client) { c.transport = transport }
}

// WithClientOptions appends options passed to sheets.NewService, e.g.
// option.WithEndpoint
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *client) { c.clientOptions = append(c.clientOptions, opts...) }
}

// client holds what is built once per Store/ProfileSource and shared by all calls
type client struct {
	config        Config
	logger        zerolog.Logger
	authenticate  Authenticator
	transport     http.RoundTripper
	clientOptions []option.ClientOption
}

func newClient(config Config, opts []Option) (*client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &client{
		config:       config,
		logger:       log.Logger,
		authenticate: DefaultAuthenticator,
		transport:    http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With().
		Str("backend", Name).
		Str("document", config.DocumentID).
		Str("list", config.ListName).
		Logger()

	return c, nil
}

// service reads the credentials file and builds an authenticated Sheets
// service. Credentials are read on every call.
func (c *client) service(ctx context.Context) (*sheets.Service, error) {
	data, err := os.ReadFile(strings.TrimSpace(c.config.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	tokens, err := c.authenticate(ctx, data)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: tokens,
			Base:   c.transport,
		},
	}

	opts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, c.clientOptions...)
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	if c.config.AppName != "" {
		service.UserAgent = c.config.AppName
	}

	return service, nil
}
