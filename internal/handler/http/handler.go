package http

import (
	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/models"
)

type Handler struct {
	services  *service.Services
	cfg       config.Server
	buildInfo models.AppBuildInfo
	metrics   *metrics

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		cfg:       cfg,
		buildInfo: buildInfo,
		metrics:   newMetrics(),
		logger:    logger,
	}
}
