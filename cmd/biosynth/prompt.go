// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/biosynth/internal/analyze"
	"github.com/pdiddy/biosynth/pkg/types"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <hypothesis>",
	Short: "Print the instruction sent to the model for a hypothesis",
	Long: `Prompt renders the analysis instruction for the hypothesis without
contacting the model. Useful for reviewing what an analysis will ask for.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hypothesis, err := types.NormalizeHypothesis(strings.Join(args, " "))
		if err != nil {
			return err
		}
		prompt, err := analyze.RenderPrompt(hypothesis)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), prompt)
		return err
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the response schema as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(analyze.ReportSchema(), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling schema: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(schemaCmd)
}
