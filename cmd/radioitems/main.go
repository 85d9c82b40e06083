// Command radioitems serves a demo RadioGroup over HTTP.
package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildwithgo/radioitems"
	"github.com/buildwithgo/radioitems/addons/react"
	"github.com/buildwithgo/radioitems/config"
	"github.com/buildwithgo/radioitems/host"
	"github.com/buildwithgo/radioitems/host/middlewares"
	"github.com/buildwithgo/radioitems/server"
)

const demoOptions = `{
  "color": {"options": [
    {"value": "r", "label": "Red"},
    {"value": "g", "label": "Green"},
    {"value": "b", "label": "Blue"}
  ]},
  "size": {"options": [
    {"value": 1, "label": "Small"},
    {"value": 2, "label": "Medium"},
    {"value": 3, "label": "Large", "disabled": true}
  ]}
}`

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	level, _ := cfg.Level()
	logger = logger.Level(level)

	options, err := loadOptions(cfg.OptionsFile)
	if err != nil {
		logger.Fatal().Err(err).Str("file", cfg.OptionsFile).Msg("failed to load options")
	}

	opts := []server.Option{
		server.WithPrefix(cfg.Prefix),
		server.WithJWTSecret(cfg.JWTSecret),
		server.WithLogger(logger),
		server.WithReact(react.New(react.Config{Version: "1"})),
	}
	if cfg.SelectRate > 0 {
		opts = append(opts, server.WithSelectLimit(cfg.SelectRate, cfg.SelectBurst))
	}
	srv := server.New(opts...)
	defer srv.Close()

	_, err = srv.Register("demo", radioitems.Props{
		Options:        options,
		Values:         radioitems.Values{},
		InputClassName: "radio-input",
		LabelStyle:     radioitems.Style{"display": "block", "cursor": "pointer"},
		FireEvent: func(_ context.Context, e radioitems.Event) {
			logger.Info().Str("event", e.Event).Msg("demo widget changed")
		},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to register widget")
	}

	app := host.New()
	app.Use(middlewares.RequestID())
	app.Use(middlewares.Logger(logger))
	app.Use(middlewares.Secure())
	app.Use(middlewares.Recovery(middlewares.WithHTMLDebug(cfg.Debug), middlewares.WithLogger(logger)))
	if len(cfg.CORSOrigins) > 0 {
		cors := middlewares.DefaultCORSConfig()
		cors.AllowOrigins = cfg.CORSOrigins
		app.Use(middlewares.CORS(cors))
	}
	if cfg.AssetsDir != "" {
		app.Static("/assets", os.DirFS(cfg.AssetsDir))
	}
	srv.Mount(app)

	logger.Info().Str("addr", cfg.Addr).Str("widget", cfg.Prefix+"/demo").Msg("listening")
	if err := app.Run(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func loadOptions(path string) (radioitems.Options, error) {
	data := []byte(demoOptions)
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, err
		}
	}
	var options radioitems.Options
	if err := json.Unmarshal(data, &options); err != nil {
		return nil, err
	}
	return options, nil
}
