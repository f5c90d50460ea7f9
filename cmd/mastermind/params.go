package main

import (
	"net/url"

	"github.com/gorilla/schema"

	"github.com/vancomm/mastermind/internal/config"
)

// gameParams overrides parts of the loaded config from the -params
// query-string, e.g. "length=5&duplicates=false&strategy=random".
// Pointer fields keep absent keys from clobbering configured values.
type gameParams struct {
	Options    []string `schema:"options"`
	Length     *int     `schema:"length"`
	Duplicates *bool    `schema:"duplicates"`
	Strategy   *string  `schema:"strategy"`
	MaxTries   *int     `schema:"max_tries"`
	Sessions   *int     `schema:"sessions"`
}

func decodeGameParams(src map[string][]string) (gameParams, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	var dto gameParams
	err := dec.Decode(&dto, src)
	return dto, err
}

func applyGameParams(cfg *config.Config, query string) error {
	values, err := url.ParseQuery(query)
	if err != nil {
		return err
	}
	params, err := decodeGameParams(values)
	if err != nil {
		return err
	}
	if params.Options != nil {
		cfg.Game.Options = params.Options
	}
	if params.Length != nil {
		cfg.Game.Length = *params.Length
	}
	if params.Duplicates != nil {
		cfg.Game.Duplicates = *params.Duplicates
	}
	if params.Strategy != nil {
		cfg.Solver.Strategy = *params.Strategy
	}
	if params.MaxTries != nil {
		cfg.Solver.MaxTries = params.MaxTries
	}
	if params.Sessions != nil {
		cfg.Sessions = *params.Sessions
	}
	return nil
}
