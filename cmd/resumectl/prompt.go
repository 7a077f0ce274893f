package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"resume-studio/internal/llm"
	"resume-studio/resume/model"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the exact prompt an endpoint would send",
	RunE:  runPrompt,
}

var (
	promptKind     string
	promptProfile  string
	promptJob      string
	promptResume   string
	promptQuestion string
	promptTitle    string
	promptCompany  string
)

func init() {
	promptCmd.Flags().StringVar(&promptKind, "kind", llm.KindResume, "Prompt kind: "+strings.Join(llm.Kinds(), ", "))
	promptCmd.Flags().StringVar(&promptProfile, "profile", "", "Path to profile JSON")
	promptCmd.Flags().StringVar(&promptJob, "job", "", "Path to job description text")
	promptCmd.Flags().StringVar(&promptResume, "resume", "", "Path to resume content text")
	promptCmd.Flags().StringVar(&promptQuestion, "question", "", "Application question (answer prompts)")
	promptCmd.Flags().StringVar(&promptTitle, "job-title", "", "Job title (cover letter prompts)")
	promptCmd.Flags().StringVar(&promptCompany, "company", "", "Company name (cover letter prompts)")

	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	in := llm.PromptInput{
		Question: promptQuestion,
		JobInfo:  model.JobInfo{JobTitle: promptTitle, CompanyName: promptCompany},
	}
	if promptProfile != "" {
		profile, err := readProfile(promptProfile)
		if err != nil {
			return err
		}
		in.Profile = profile
	}
	var err error
	if in.JobDescription, err = readOptional(promptJob); err != nil {
		return err
	}
	if in.ResumeContent, err = readOptional(promptResume); err != nil {
		return err
	}

	prompt, err := llm.BuildPrompt(promptKind, in)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	return nil
}

func readOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
