// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     cmd
// Description: One-shot text enhancement from the command line
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/cicero/internal/doctype"
	"github.com/msto63/cicero/internal/enhance"
	"github.com/msto63/cicero/internal/pipeline"
)

var (
	enhanceType      string
	enhanceRecipient string
	enhanceNoFillers bool
	enhanceNoPunct   bool
	enhanceNoCaps    bool
	enhanceLearning  bool
	enhanceCloud     bool
	enhanceJSON      bool
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance [text]",
	Short: "Enhance dictated text",
	Long: `Enhance runs dictated text through the full pipeline. Text is read
from the arguments, or from stdin when no argument is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			printError("loading config", err)
			return err
		}

		text := strings.Join(args, " ")
		if strings.TrimSpace(text) == "" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				printError("reading stdin", err)
				return err
			}
			text = string(data)
		}

		opts := enhance.OptionsFromConfig(cfg)
		if enhanceNoFillers {
			opts.RemoveFillers = false
		}
		if enhanceNoPunct {
			opts.AutoPunctuate = false
		}
		if enhanceNoCaps {
			opts.AutoCapitalize = false
		}
		if cmd.Flags().Changed("learning") {
			opts.ApplyLearning = enhanceLearning
		}
		if cmd.Flags().Changed("cloud") {
			opts.UseCloud = enhanceCloud
		}

		s := buildStack(cfg)
		defer s.Close()

		result, err := s.service.Enhance(context.Background(), enhance.Request{
			Text:         text,
			DocumentType: doctype.Parse(enhanceType),
			Recipient:    enhanceRecipient,
			Options:      opts,
		})
		if err != nil {
			printError("enhancing text", err)
			return err
		}

		return printEnhanceResult(result)
	},
}

func printEnhanceResult(result *pipeline.Result) error {
	if enhanceJSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	fmt.Println(result.EnhancedText)
	fmt.Fprintf(os.Stderr, "type=%s rules=%s learned=%d cloud=%t in %s\n",
		result.DocumentType,
		strings.Join(result.AppliedRules, ","),
		result.LearnedApplied,
		result.CloudEnhanced,
		result.ProcessingTime.Round(time.Microsecond),
	)
	return nil
}

func init() {
	enhanceCmd.Flags().StringVarP(&enhanceType, "type", "t", "", "document type (email, message, document, social, code, search)")
	enhanceCmd.Flags().StringVarP(&enhanceRecipient, "recipient", "r", "", "recipient name for greetings")
	enhanceCmd.Flags().BoolVar(&enhanceNoFillers, "no-fillers", false, "keep filler words")
	enhanceCmd.Flags().BoolVar(&enhanceNoPunct, "no-punctuate", false, "skip auto-punctuation")
	enhanceCmd.Flags().BoolVar(&enhanceNoCaps, "no-capitalize", false, "skip auto-capitalization")
	enhanceCmd.Flags().BoolVar(&enhanceLearning, "learning", false, "apply learned patterns")
	enhanceCmd.Flags().BoolVar(&enhanceCloud, "cloud", false, "use the cloud rewrite provider")
	enhanceCmd.Flags().BoolVar(&enhanceJSON, "json", false, "print the full result as JSON")
	rootCmd.AddCommand(enhanceCmd)
}
