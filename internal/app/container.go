package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"careerpath/internal/config"
	"careerpath/internal/database"
	"careerpath/internal/database/migration"
	dbpostgres "careerpath/internal/database/postgres"
	"careerpath/internal/infrastructure/cache"
	"careerpath/internal/infrastructure/jobsearch"
	"careerpath/internal/infrastructure/llm"
	"careerpath/internal/pkg/jwt"
	"careerpath/internal/repository"
	"careerpath/internal/service"
	"careerpath/internal/usecase"
	"careerpath/internal/ws"
)

// Container owns every long-lived dependency of the server.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	LLM   llm.Client
	Hub   *ws.Hub
	JWT   jwt.Service

	Roadmap  usecase.RoadmapUsecase
	Progress usecase.ProgressUsecase
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	applied, err := migration.Runner{}.Run(connectCtx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	for _, m := range applied {
		logger.Printf("[Migration] applied version=%d name=%s", m.Version, m.Name)
	}

	llmClient, err := llm.NewGeminiClient(ctx, cfg.LLM)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		LLM:    llmClient,
		Hub:    ws.NewHub(logger),
		JWT:    jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn),
	}

	repo := repository.NewPostgresRoadmapRepository(db)
	titles := service.NewTitleGenerator(llmClient, cfg.LLM.Timeout, logger)
	roadmaps := service.NewRoadmapGenerator(llmClient, cfg.LLM.Timeout, logger)
	jobs := service.NewJobSearcher(jobsearch.NewAdzunaClient(cfg.JobSearch, nil, logger), c.Cache, logger)

	c.Roadmap = usecase.NewRoadmapUsecase(titles, roadmaps, jobs, repo, c.Hub, logger)
	c.Progress = usecase.NewProgressUsecase(repo, c.Hub, logger)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.LLM != nil {
		errs = append(errs, c.LLM.Close())
	}
	errs = append(errs, c.Cache.Close())
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
