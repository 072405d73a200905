// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     cmd
// Description: Long-running REST and websocket server
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/msto63/cicero/internal/enhance"
	"github.com/msto63/cicero/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Cicero HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			printError("loading config", err)
			return err
		}

		s := buildStack(cfg)
		defer s.Close()

		srv := server.New(server.Config{
			Host:                cfg.Server.Host,
			Port:                cfg.Server.Port,
			ReadTimeout:         cfg.Server.ReadTimeout.Duration,
			WriteTimeout:        cfg.Server.WriteTimeout.Duration,
			DefaultOptions:      enhance.OptionsFromConfig(cfg),
			SimilarityThreshold: cfg.Learning.SimilarityThreshold,
		}, s.service, s.classifier, s.patterns)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := srv.Start(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Stop(shutdownCtx)
		})

		if err := g.Wait(); err != nil {
			printError("server", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
