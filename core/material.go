package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coffemugtester/youtwit/segment"
)

const summaryChars = 600

// Summarize asks the model for a short summary of the transcript.
func Summarize(ctx context.Context, llm Completer, segs []segment.TranscriptSegment) (string, error) {
	if len(segs) == 0 {
		return "", fmt.Errorf("empty transcript")
	}
	prompt := fmt.Sprintf("Summarize the following transcript of a video into around %d characters: %s",
		summaryChars, TranscriptToString(segs))
	out, err := llm.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func MakeSummary(videoID, response string) string {
	return fmt.Sprintf("%s\nSummary: %s\n", WatchURL(videoID), response)
}

// MakeQuiz asks for n multiple choice questions spread over the chapters.
func MakeQuiz(ctx context.Context, llm Completer, segs []segment.TranscriptSegment, n int) (*Quiz, error) {
	if len(segs) == 0 {
		return nil, fmt.Errorf("empty transcript")
	}
	if n < 1 {
		n = 5
	}
	prompt := fmt.Sprintf(`Write %d multiple choice questions about the following video transcript.
Cover every chapter. Answer with JSON only, shaped like
{"questions":[{"prompt":"...","options":["...","...","...","..."],"answer":0,"chapter":"..."}]}
where answer is the index of the correct option.

%s`, n, TranscriptToString(segs))

	out, err := llm.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseQuiz(out)
}

// ParseQuiz extracts the quiz object from a model answer and drops invalid questions.
func ParseQuiz(answer string) (*Quiz, error) {
	var q Quiz
	if err := decodeJSONObject(answer, &q); err != nil {
		return nil, fmt.Errorf("quiz: %w", err)
	}
	valid := q.Questions[:0]
	for _, question := range q.Questions {
		if question.Prompt == "" || len(question.Options) < 2 {
			continue
		}
		if question.Answer < 0 || question.Answer >= len(question.Options) {
			continue
		}
		valid = append(valid, question)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("quiz: model returned no usable questions")
	}
	q.Questions = valid
	return &q, nil
}

// MakeMindMap asks for a tree of topics rooted at the video.
func MakeMindMap(ctx context.Context, llm Completer, segs []segment.TranscriptSegment) (*MindMapNode, error) {
	if len(segs) == 0 {
		return nil, fmt.Errorf("empty transcript")
	}
	prompt := fmt.Sprintf(`Build a mind map of the following video transcript, one branch per chapter.
Answer with JSON only, shaped like {"title":"...","children":[{"title":"...","children":[...]}]}.

%s`, TranscriptToString(segs))

	out, err := llm.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var root MindMapNode
	if err := decodeJSONObject(out, &root); err != nil {
		return nil, fmt.Errorf("mind map: %w", err)
	}
	if root.Title == "" {
		return nil, fmt.Errorf("mind map: missing root title")
	}
	return &root, nil
}

// RenderMindMap prints the tree as a nested markdown list.
func RenderMindMap(root MindMapNode) string {
	var sb strings.Builder
	var walk func(n MindMapNode, depth int)
	walk = func(n MindMapNode, depth int) {
		fmt.Fprintf(&sb, "%s- %s\n", strings.Repeat("  ", depth), n.Title)
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return sb.String()
}

// decodeJSONObject decodes the outermost {...} of s, models like to wrap JSON in prose or fences.
func decodeJSONObject(s string, v any) error {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return fmt.Errorf("no JSON object in answer: %.200s", s)
	}
	if err := json.Unmarshal([]byte(s[start:end+1]), v); err != nil {
		return fmt.Errorf("unmarshal: %w\nraw: %.200s", err, s)
	}
	return nil
}
