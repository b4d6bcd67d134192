package tutor

import (
	"context"
	"strings"
	"time"
)

const systemPrompt = `You are a patient teacher explaining character encodings to beginners.
Focus on UTF-8, Shift_JIS and why mismatched encodings produce mojibake.
Answer in plain language and keep the reply short.`

// BuildPrompt combines the user's question with the current analysis
func BuildPrompt(question, analysisContext string) string {
	question = strings.TrimSpace(question)
	analysisContext = strings.TrimSpace(analysisContext)
	if analysisContext == "" {
		return question
	}

	var sb strings.Builder
	sb.WriteString("Current analysis:\n")
	sb.WriteString(analysisContext)
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(question)
	return sb.String()
}

func contextWithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
