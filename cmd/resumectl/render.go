package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"resume-studio/resume/model"
	"resume-studio/resume/parser"
	"resume-studio/resume/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Assemble a DOCX from a profile and a saved model response",
	RunE:  runRender,
}

var (
	renderProfile  string
	renderAI       string
	renderOut      string
	renderJobTitle string
	renderCompany  string
)

func init() {
	renderCmd.Flags().StringVar(&renderProfile, "profile", "", "Path to profile JSON (required)")
	renderCmd.Flags().StringVar(&renderAI, "ai", "", "Path to the raw model response (empty falls back to the profile)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output path or directory (defaults to the generated file name)")
	renderCmd.Flags().StringVar(&renderJobTitle, "job-title", "", "Job title used in the file name")
	renderCmd.Flags().StringVar(&renderCompany, "company", "", "Company used in the file name")
	_ = renderCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	profile, err := readProfile(renderProfile)
	if err != nil {
		return err
	}

	raw := ""
	if renderAI != "" {
		data, err := os.ReadFile(renderAI)
		if err != nil {
			return fmt.Errorf("read model response: %w", err)
		}
		raw = string(data)
	}

	parsed := parser.Parse(raw, profile)
	doc, err := render.Assemble(profile, parsed.Resume)
	if err != nil {
		return fmt.Errorf("assemble: %w", err)
	}

	name := render.FileName(profile, renderJobTitle, renderCompany)
	out := renderOut
	switch {
	case out == "":
		out = name
	default:
		if info, err := os.Stat(out); err == nil && info.IsDir() {
			out = filepath.Join(out, name)
		}
	}
	if err := os.WriteFile(out, doc, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "wrote %s (%d bytes)\n", out, len(doc))
	if parsed.Fallback != parser.ReasonNone {
		fmt.Fprintf(w, "fallback: %s\n", parsed.Fallback)
	}
	if parsed.Padded > 0 {
		fmt.Fprintf(w, "padded bullets: %d\n", parsed.Padded)
	}
	return nil
}

func readProfile(path string) (model.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	var profile model.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.Profile{}, fmt.Errorf("decode profile %s: %w", path, err)
	}
	profile.Normalize()
	return profile, nil
}
