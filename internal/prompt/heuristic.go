package prompt

import (
	"regexp"
	"strings"
)

// Kind is the classified intent of a free-text prompt.
type Kind int

const (
	KindBlocker Kind = iota
	KindStudyTopic
)

// Classification is the outcome of inspecting a prompt: the dispatched kind
// plus the parameters extracted for it.
type Classification struct {
	Kind      Kind
	Task      string // blocker flow
	FocusTime string // blocker flow
	Topic     string // study-topic flow
}

// Classifier decides which flow a prompt belongs to. Keyword heuristics are
// fragile, so the strategy is replaceable; KeywordClassifier is the default.
type Classifier interface {
	Classify(prompt string) Classification
}

// Fallback phrases used when parameter extraction finds nothing.
const (
	defaultTask      = "my current task"
	defaultFocusTime = "an unspecified duration"
)

var (
	// "task: <task> for <duration>" in one shot.
	taskWithFocusPattern = regexp.MustCompile(`(?i)task:\s*(.+?)\s+for\s+(.+)`)
	taskOnlyPattern      = regexp.MustCompile(`(?i)task:\s*(.+)`)
	focusOnlyPattern     = regexp.MustCompile(`(?i)\bfor\s+(.+)$`)
)

// KeywordClassifier routes on exact trigger words: "blockers", the pair
// "task" + "focus", or the "task:" extraction marker. Everything else is a
// study topic, with the whole trimmed prompt as the topic. The trigger words
// and markers are load-bearing for behavioral compatibility.
type KeywordClassifier struct{}

func (KeywordClassifier) Classify(prompt string) Classification {
	trimmed := strings.TrimSpace(prompt)
	lower := strings.ToLower(trimmed)

	isBlocker := strings.Contains(lower, "blockers") ||
		(strings.Contains(lower, "task") && strings.Contains(lower, "focus")) ||
		strings.Contains(lower, "task:")
	if !isBlocker {
		return Classification{Kind: KindStudyTopic, Topic: trimmed}
	}

	task, focusTime := defaultTask, defaultFocusTime
	if m := taskWithFocusPattern.FindStringSubmatch(trimmed); m != nil {
		task, focusTime = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	} else if m := taskOnlyPattern.FindStringSubmatch(trimmed); m != nil {
		task = strings.TrimSpace(m[1])
	} else if m := focusOnlyPattern.FindStringSubmatch(trimmed); m != nil {
		focusTime = strings.TrimSpace(m[1])
	}

	return Classification{Kind: KindBlocker, Task: task, FocusTime: focusTime}
}
