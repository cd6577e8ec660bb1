package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/aliskhannn/logic-master/internal/config"
	"github.com/aliskhannn/logic-master/internal/delivery/console"
	"github.com/aliskhannn/logic-master/internal/delivery/telegram"
	"github.com/aliskhannn/logic-master/internal/domain/entities"
	"github.com/aliskhannn/logic-master/internal/infra/postgres"
	"github.com/aliskhannn/logic-master/internal/infra/redis"
	"github.com/aliskhannn/logic-master/internal/infra/sqlite"
	"github.com/aliskhannn/logic-master/internal/logger"
	"github.com/aliskhannn/logic-master/internal/metrics"
	"github.com/aliskhannn/logic-master/internal/report"
	"github.com/aliskhannn/logic-master/internal/repository"
	"github.com/aliskhannn/logic-master/internal/service"
	"github.com/aliskhannn/logic-master/internal/storage"
)

const usage = `usage: logicmaster <command> [flags]

commands:
  play     play a game (-mode single|multi, -n questions)
  daily    play today's daily challenge
  stats    show statistics and trends
  export   write an Excel report (-o path)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   repository.KVStore
	bank    *repository.QuestionBank
	console *console.Console
	game    *service.GameService
}

func run(args []string) error {
	cmd := "play"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore()

	bank, err := repository.NewQuestionBank(cfg.QuestionsJSONPath)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	con := console.New(os.Stdout)
	notifier := service.MultiNotifier{con}
	if cfg.Telegram.Enabled() {
		bot, err := telegram.NewBot(cfg.Telegram.Token)
		if err != nil {
			log.Warn("telegram notifications disabled", zap.Error(err))
		} else {
			notifier = append(notifier, telegram.NewNotifier(bot, cfg.Telegram.ChatID, log))
		}
	}

	game := service.NewGameService(repository.NewProfileRepository(store), notifier, con, m, log)
	if err := game.Init(ctx); err != nil {
		return err
	}

	a := &app{cfg: cfg, logger: log, store: store, bank: bank, console: con, game: game}

	switch cmd {
	case "play":
		err = a.play(ctx, args)
	case "daily":
		err = a.daily(ctx)
	case "stats":
		err = a.stats(ctx)
	case "export":
		err = a.export(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}

	if path := cfg.Metrics.TextfilePath; path != "" {
		if werr := metrics.WriteTextfile(path, registry); werr != nil {
			log.Error("failed to write metrics", zap.Error(werr))
		}
	}

	if errors.Is(err, context.Canceled) {
		log.Info("shutdown signal received")
		return nil
	}
	return err
}

func (a *app) play(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	mode := fs.String("mode", string(entities.ModeSingle), "game mode: single or multi")
	count := fs.Int("n", a.cfg.Game.QuestionCount, "number of questions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return a.runSession(ctx, func(s *service.Scorer) error {
		return s.StartGame(entities.Mode(*mode), *count)
	})
}

func (a *app) daily(ctx context.Context) error {
	challenges := service.NewDailyChallengeService(
		repository.NewDailyChallengeRepository(a.store),
		a.bank,
		a.logger,
	)

	challenge, err := challenges.Today(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n%s\n", challenge.Title, challenge.Date, challenge.Description)

	return a.runSession(ctx, func(s *service.Scorer) error {
		return s.StartWithQuestions(entities.ModeDaily, challenge.Questions)
	})
}

func (a *app) runSession(ctx context.Context, start func(*service.Scorer) error) error {
	analytics := service.NewAnalyticsService(a.game, a.cfg.Analytics.Schedule, a.logger)

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := analytics.Start(jobCtx); err != nil {
			a.logger.Error("analytics scheduler failed", zap.Error(err))
		}
	}()

	scorer := service.NewScorer(a.bank, a.game, a.game, a.game, service.ScorerConfig{
		QuestionTimeLimit:  a.cfg.Game.QuestionTimeLimit,
		AnswerDisplayDelay: a.cfg.Game.AnswerDisplayDelay,
		HintCost:           a.cfg.Game.HintCost,
	}, a.logger)

	if err := start(scorer); err != nil {
		return err
	}

	if err := a.console.Play(ctx, scorer, os.Stdin); err != nil {
		return err
	}

	if _, _, err := analytics.Analyze(ctx); err != nil {
		a.logger.Error("failed to analyze trends", zap.Error(err))
	}
	return nil
}

func (a *app) stats(ctx context.Context) error {
	analytics := service.NewAnalyticsService(a.game, a.cfg.Analytics.Schedule, a.logger)
	if _, _, err := analytics.Analyze(ctx); err != nil {
		a.logger.Error("failed to analyze trends", zap.Error(err))
	}

	a.console.RenderStats(a.game.Profile())
	return nil
}

func (a *app) export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	path := fs.String("o", a.cfg.Report.Path, "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := report.Save(*path, a.game.Profile()); err != nil {
		return err
	}

	fmt.Printf("Report written to %s\n", *path)
	return nil
}

func openStore(ctx context.Context, cfg config.Storage) (repository.KVStore, func(), error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Driver {
	case "sqlite":
		s, err := sqlite.Open(dsn)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil

	case "postgres":
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.MaxConnections),
			MaxConnLifetime: cfg.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		s := postgres.NewKVStore(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return s, pool.Close, nil

	case "redis":
		client, err := redis.NewClient(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewKVStore(client), func() { _ = client.Close() }, nil

	default:
		return storage.NewMemoryStore(), func() {}, nil
	}
}
