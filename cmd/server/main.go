package main

import (
	"context"
	"log"
	"os"
	"time"

	httpadapter "careerprep/internal/adapter/http"
	repo "careerprep/internal/adapter/repository"
	"careerprep/internal/infrastructure/migration"
	"careerprep/internal/render"
	"careerprep/internal/usecase"
	infra "careerprep/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
)

func main() {
	ctx := context.Background()

	// infra setup
	pool, err := infra.NewPool(ctx)
	if err != nil {
		log.Printf("warning: database not available: %v", err)
	} else {
		if err := migration.RunMigrations(ctx, pool); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "secretKey"
		log.Printf("warning: JWT_SECRET not set, using insecure default")
	}
	requireConfirmation := os.Getenv("REQUIRE_EMAIL_CONFIRMATION") == "true"

	usersRepo := repo.NewUsersRepo(pool)
	tipsRepo := repo.NewTipsRepo(pool)
	resumesRepo := repo.NewResumesRepo(pool)

	authService := usecase.NewAuthService(usersRepo, []byte(jwtSecret), 24*time.Hour, requireConfirmation)
	tipService := usecase.NewTipService(tipsRepo)
	builderService := usecase.NewBuilderService(resumesRepo)
	exporter := usecase.NewExporter(render.NewEngine(), infra.NewChromedpRenderer())

	app := fiber.New(fiber.Config{
		BodyLimit: 4 * 1024 * 1024, // room for a 2MB photo upload
	})

	h := httpadapter.NewHandler(authService, tipService, builderService, exporter)
	h.Register(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
