package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/adminauth"
	"portfolio-backend/internal/chat"
	"portfolio-backend/internal/editor"
	"portfolio-backend/internal/llm"
	openai "portfolio-backend/internal/llm/openai"
	"portfolio-backend/internal/pdfexport"
	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/shared/auth"
	"portfolio-backend/internal/shared/config"
	"portfolio-backend/internal/shared/server"
	"portfolio-backend/internal/shared/storage/db"
	"portfolio-backend/internal/shared/storage/object"
	localstore "portfolio-backend/internal/shared/storage/object/local"
	s3store "portfolio-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	PortfolioRepo    portfolio.Repo
	PortfolioService *portfolio.Service
	AuthService      *adminauth.Service
	EditorService    *editor.Service
	ChatService      *chat.Service
	PDFService       *pdfexport.Service

	PortfolioHandler *portfolio.Handler
	AuthHandler      *adminauth.Handler
	EditorHandler    *editor.Handler
	ChatHandler      *chat.Handler
	PDFHandler       *pdfexport.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if cfg.AdminJWTSecret != "" {
		auth.SetSecret(cfg.AdminJWTSecret)
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		PortfolioHandler: app.PortfolioHandler,
		AuthHandler:      app.AuthHandler,
		EditorHandler:    app.EditorHandler,
		ChatHandler:      app.ChatHandler,
		PDFHandler:       app.PDFHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repository")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultOptions())
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repository: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.Migrate(sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repository: %v", err)
			_ = sqlDB.Close()
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) error {
	var repo portfolio.Repo
	if app.DB != nil {
		repo = &portfolio.PGRepo{DB: app.DB}
	} else {
		repo = portfolio.NewMemoryRepo()
	}

	portfolioSvc := portfolio.NewService(repo)

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" && os.Getenv("OPENAI_API_KEY") != "" {
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel)
		if err != nil {
			return err
		}
		llmClient = client
	}

	renderer := pdfexport.NewChromeRenderer(app.Config.ChromePath)

	app.PortfolioRepo = repo
	app.PortfolioService = portfolioSvc
	app.AuthService = adminauth.NewService(portfolioSvc)
	app.EditorService = editor.NewService(portfolioSvc, llmClient, app.Store)
	app.ChatService = chat.NewService(portfolioSvc, llmClient)
	app.PDFService = pdfexport.NewService(portfolioSvc, renderer, app.Store)

	app.PortfolioHandler = portfolio.NewHandler(portfolioSvc)
	app.AuthHandler = adminauth.NewHandler(app.AuthService)
	app.EditorHandler = editor.NewHandler(app.EditorService)
	app.ChatHandler = chat.NewHandler(app.ChatService)
	app.PDFHandler = pdfexport.NewHandler(app.PDFService)

	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
