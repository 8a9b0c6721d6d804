package server

import (
	"github.com/google/wire"

	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/engine"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/feedback"
	"github.com/Matan-123/competitor_radar/app/competitor_radar/pkg/llm"
	"github.com/Matan-123/competitor_radar/app/display/internal/data"
	"github.com/Matan-123/competitor_radar/app/display/internal/repo"
	"github.com/Matan-123/competitor_radar/app/display/internal/service"
	"github.com/Matan-123/competitor_radar/app/display/internal/usecase"
)

// ProviderSet 是展示服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Radar providers
	NewRadarConfig,
	NewLLMClient,
	NewRadarEngine,
	NewFeedbackClassifier,
	wire.Bind(new(llm.Client), new(*llm.ChatClient)),
	wire.Bind(new(repo.Analyzer), new(*engine.Engine)),
	wire.Bind(new(repo.FeedbackClassifier), new(*feedback.Classifier)),

	// Data providers
	data.NewData,
	data.NewHistoryRepo,
	data.NewInsightRepo,

	// UseCase providers
	usecase.NewRadarUseCase,
	usecase.NewInsightUseCase,

	// Service providers
	service.NewRadarService,
)
