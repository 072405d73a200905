package cmd

import (
	"github.com/msto63/cicero/internal/classify"
	"github.com/msto63/cicero/internal/classify/model"
	"github.com/msto63/cicero/internal/classify/store"
	"github.com/msto63/cicero/internal/cloud"
	"github.com/msto63/cicero/internal/enhance"
	"github.com/msto63/cicero/internal/learning"
	"github.com/msto63/cicero/pkg/core/config"
	"github.com/msto63/cicero/pkg/core/logging"
)

// stack wires the full service graph for a command. Optional collaborators
// stay nil when not configured or unavailable; the pipeline degrades
// instead of failing to start.
type stack struct {
	classifier *classify.Service
	patterns   learning.Store
	provider   cloud.Provider
	service    *enhance.Service
	logStore   store.ClassificationStore
	logger     *logging.Logger
}

func buildStack(cfg *config.Config) *stack {
	logger := logging.New("cicero")

	var sink classify.ResultLogger
	var logStore store.ClassificationStore
	if cfg.Store.EnablePersistence {
		st, err := store.NewSQLiteStore(store.Config{Path: cfg.Store.LogDBPath})
		if err != nil {
			logger.Warn("Classification store unavailable, logging disabled", "error", err)
		} else {
			logStore = st
			sink = classify.NewStoreSink(st)
		}
	}
	classifier := classify.NewService(model.New(cfg.Classifier.ModelPath), sink)

	var patterns learning.Store
	if cfg.Learning.Enabled {
		ps, err := learning.NewSQLiteStore(cfg.Learning.StorePath, cfg.Learning.MinFrequency)
		if err != nil {
			logger.Warn("Learning store unavailable, learned patterns disabled", "error", err)
		} else {
			patterns = ps
		}
	}

	var provider cloud.Provider
	if cfg.Cloud.Enabled && cfg.Cloud.APIKey != "" {
		p, err := cloud.NewProvider(cloud.Config{
			Provider:      cfg.Cloud.Provider,
			APIKey:        cfg.Cloud.APIKey,
			Timeout:       cfg.Cloud.Timeout.Duration,
			ClaudeBaseURL: cfg.Cloud.ClaudeBaseURL,
			ClaudeModel:   cfg.Cloud.ClaudeModel,
			OpenAIBaseURL: cfg.Cloud.OpenAIBaseURL,
			OpenAIModel:   cfg.Cloud.OpenAIModel,
		})
		if err != nil {
			logger.Warn("Cloud provider unavailable, cloud rewrite disabled", "error", err)
		} else {
			provider = p
		}
	}

	engine := enhance.BuildEngine(cfg, patterns, provider, logger)

	return &stack{
		classifier: classifier,
		patterns:   patterns,
		provider:   provider,
		service:    enhance.NewService(engine, classifier),
		logStore:   logStore,
		logger:     logger,
	}
}

func (s *stack) Close() {
	if s.classifier != nil {
		s.classifier.Close()
	}
	if s.patterns != nil {
		if err := s.patterns.Close(); err != nil {
			s.logger.Warn("Closing learning store failed", "error", err)
		}
	}
	if s.logStore != nil {
		if err := s.logStore.Close(); err != nil {
			s.logger.Warn("Closing classification store failed", "error", err)
		}
	}
}
