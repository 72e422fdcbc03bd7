package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/coffemugtester/youtwit/core"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a multiple choice quiz from a video",
	RunE:  makeQuiz,
}

var mindMapCmd = &cobra.Command{
	Use:   "mindmap",
	Short: "Generate a mind map of a video",
	RunE:  makeMindMap,
}

func init() {
	quizCmd.Flags().IntP("questions", "n", 5, "Number of questions")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(mindMapCmd)
}

func makeQuiz(command *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(command.Context(), 300*time.Second)
	defer cancel()

	_, segs, err := loadSegments(ctx, command)
	if err != nil {
		return err
	}
	llm, err := completer(command)
	if err != nil {
		return err
	}
	n, _ := command.Flags().GetInt("questions")

	quiz, err := core.MakeQuiz(ctx, llm, segs, n)
	if err != nil {
		return err
	}

	out := command.OutOrStdout()
	for i, q := range quiz.Questions {
		fmt.Fprintf(out, "%d. %s\n", i+1, q.Prompt)
		for j, o := range q.Options {
			fmt.Fprintf(out, "   %c) %s\n", 'a'+j, o)
		}
		fmt.Fprintf(out, "   answer: %c", 'a'+q.Answer)
		if q.Chapter != "" {
			fmt.Fprintf(out, " (chapter: %s)", q.Chapter)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func makeMindMap(command *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(command.Context(), 300*time.Second)
	defer cancel()

	_, segs, err := loadSegments(ctx, command)
	if err != nil {
		return err
	}
	llm, err := completer(command)
	if err != nil {
		return err
	}

	root, err := core.MakeMindMap(ctx, llm, segs)
	if err != nil {
		return err
	}
	fmt.Fprint(command.OutOrStdout(), core.RenderMindMap(*root))
	return nil
}
