package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var classifyJSON bool

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Classify the document type of a text",
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

		s := buildStack(cfg)
		defer s.Close()

		result, err := s.classifier.Classify(context.Background(), text)
		if err != nil {
			printError("classifying text", err)
			return err
		}

		if classifyJSON {
			return json.NewEncoder(os.Stdout).Encode(result)
		}
		fmt.Println(result.Category)
		return nil
	},
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "print the full result as JSON")
	rootCmd.AddCommand(classifyCmd)
}
