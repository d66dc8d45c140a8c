package main

import (
	"fmt"
	"os"

	"github.com/obratech/contracts-service/internal/auth"
	"github.com/obratech/contracts-service/internal/config"
	"github.com/obratech/contracts-service/internal/db"
	"github.com/obratech/contracts-service/internal/excel"
	httphandler "github.com/obratech/contracts-service/internal/http"
	"github.com/obratech/contracts-service/internal/http/middleware"
	"github.com/obratech/contracts-service/internal/logger"
	"github.com/obratech/contracts-service/internal/pdf"
	"github.com/obratech/contracts-service/internal/repository"
	"github.com/obratech/contracts-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	contractRepo := repository.NewContractRepository(database)
	templateRepo := repository.NewTemplateRepository(database)
	proposalRepo := repository.NewProposalRepository(database)

	pdfGenerator, err := pdf.NewGenerator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}
	workbookGenerator := excel.NewGenerator()

	contractService := service.NewContractService(contractRepo, proposalRepo, pdfGenerator, workbookGenerator, cfg)
	templateService := service.NewTemplateService(templateRepo)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(contractService, templateService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting contracts service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
