package services

import (
	"sync"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/completion"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/suggest"
)

var (
	executorMu      sync.RWMutex
	currentExecutor *PromptExecutor
	currentSuggest  *suggest.Suggester
)

// SetExecutor installs the process-wide executor used by the HTTP handlers.
func SetExecutor(e *PromptExecutor) {
	executorMu.Lock()
	currentExecutor = e
	executorMu.Unlock()
}

// Executor returns the installed executor, or one without a provider whose
// executions always fall back.
func Executor() *PromptExecutor {
	executorMu.RLock()
	e := currentExecutor
	executorMu.RUnlock()
	if e == nil {
		return NewPromptExecutor(DefaultStore, completion.Disabled{})
	}
	return e
}

// SetSuggester installs the process-wide suggester.
func SetSuggester(s *suggest.Suggester) {
	executorMu.Lock()
	currentSuggest = s
	executorMu.Unlock()
}

func suggester() *suggest.Suggester {
	executorMu.RLock()
	s := currentSuggest
	executorMu.RUnlock()
	return s
}
