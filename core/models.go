package core

import "time"

// Caption is one entry as returned by youtube_transcript_api.
type Caption struct {
	Duration float64 `json:"duration"`
	Start    float64 `json:"start"`
	Text     string  `json:"text,omitempty"`
}

type Captions []Caption

type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type GenerateResponse struct {
	Model              string    `json:"model"`
	CreatedAt          time.Time `json:"created_at"`
	Response           string    `json:"response"`
	Done               bool      `json:"done"`
	DoneReason         string    `json:"done_reason"`
	Context            []int     `json:"context"`
	TotalDuration      int64     `json:"total_duration"`
	LoadDuration       int64     `json:"load_duration"`
	PromptEvalCount    int       `json:"prompt_eval_count"`
	PromptEvalDuration int64     `json:"prompt_eval_duration"`
	EvalCount          int       `json:"eval_count"`
	EvalDuration       int64     `json:"eval_duration"`
}

type Quiz struct {
	Questions []Question `json:"questions"`
}

type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"` // index into Options
	Chapter string   `json:"chapter,omitempty"`
}

type MindMapNode struct {
	Title    string        `json:"title"`
	Children []MindMapNode `json:"children,omitempty"`
}
