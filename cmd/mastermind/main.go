package main

import (
	"database/sql"
	"flag"
	"math/rand/v2"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/mastermind/internal/config"
	"github.com/vancomm/mastermind/internal/mastermind"
	"github.com/vancomm/mastermind/internal/session"
)

var (
	log = logrus.New()

	configPath string
	params     string
	sessions   int
	seed       uint64
)

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
	flag.StringVar(&params, "params", "", "game parameter overrides as a query string")
	flag.IntVar(&sessions, "n", 0, "number of sessions to play")
	flag.Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "rng seed")
}

func setupLogging(cfg *config.Config) {
	logLevel := logrus.InfoLevel
	if cfg.Development() {
		logLevel = logrus.DebugLevel
	}
	if cfg.Log.Level != "" {
		var err error
		logLevel, err = logrus.ParseLevel(cfg.Log.Level)
		if err != nil {
			log.Fatal("bad log level: ", err)
		}
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if cfg.Log.Path != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.Log.Path,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      logLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			log.Fatal("unable to create log file hook: ", err)
		}
		log.AddHook(hook)
	}
}

func newSolver(cfg *config.Config, r *rand.Rand) (mastermind.Solver[string], error) {
	switch cfg.Solver.Strategy {
	case config.StrategyRandom:
		return mastermind.NewRandomSearch(
			r, cfg.Game.Options, cfg.Game.Length, cfg.Game.Duplicates, cfg.MaxTries(),
		)
	default:
		return mastermind.NewPruner(cfg.Game.Options, cfg.Game.Length, cfg.Game.Duplicates)
	}
}

func playSession(cfg *config.Config, r *rand.Rand, store *session.Store) (session.Result, error) {
	solution, err := mastermind.RandomCombination(
		r, cfg.Game.Options, cfg.Game.Length, cfg.Game.Duplicates,
	)
	if err != nil {
		return session.Result{}, err
	}
	solver, err := newSolver(cfg, r)
	if err != nil {
		return session.Result{}, err
	}

	result, err := session.Play(log, cfg.Solver.Strategy, mastermind.NewOracle(solution), solver)
	if saveErr := store.Save(result); saveErr != nil {
		log.WithField("session", result.ID).Warn("unable to save session: ", saveErr)
	}
	if err != nil {
		return result, err
	}

	log.WithFields(logrus.Fields{
		"session":  result.ID,
		"solution": result.Solution,
		"guesses":  result.GuessCount(),
		"duration": result.Duration.String(),
	}).Info("session solved")
	return result, nil
}

func main() {
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		if err := config.ReadConfig(configPath, &cfg); err != nil {
			log.Fatal("unable to read config: ", err)
		}
	}
	if params != "" {
		if err := applyGameParams(&cfg, params); err != nil {
			log.Fatal("bad -params value: ", err)
		}
	}
	if sessions > 0 {
		cfg.Sessions = sessions
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config: ", err)
	}

	setupLogging(&cfg)
	log.WithFields(cfg.Fields()).Info("starting")

	db, err := sql.Open("sqlite3", cfg.Storage.Path)
	if err != nil {
		log.Fatal("unable to open session db: ", err)
	}
	defer db.Close()
	store, err := session.NewStore(db)
	if err != nil {
		log.Fatal("unable to create session store: ", err)
	}

	// One rng and one solver/oracle pair per session; nothing mutable is
	// shared across the group except the store, which locks internally.
	var (
		g       errgroup.Group
		results = make([]session.Result, cfg.Sessions)
	)
	for i := range cfg.Sessions {
		g.Go(func() error {
			r := rand.New(rand.NewPCG(seed, uint64(i)))
			result, err := playSession(&cfg, r, store)
			results[i] = result
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("session failed: ", err)
	}

	var totalGuesses int
	for _, result := range results {
		totalGuesses += result.GuessCount()
	}
	if cfg.Sessions > 0 {
		log.WithFields(logrus.Fields{
			"strategy":    cfg.Solver.Strategy,
			"sessions":    cfg.Sessions,
			"avg_guesses": float64(totalGuesses) / float64(cfg.Sessions),
		}).Info("done")
	}
}
