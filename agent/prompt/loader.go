package prompt

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

var (
	//go:embed template/base.txt
	baseRaw string

	//go:embed template/enhanced.txt
	enhancedRaw string

	//go:embed template/email.txt
	emailRaw string

	//go:embed template/scheduling.txt
	schedulingRaw string

	//go:embed template/overview.txt
	overviewRaw string
)

// Set holds the rendered prompt content for every agent variant.
type Set struct {
	Base       string
	Enhanced   string
	Email      string
	Scheduling string
	// Overview is the canned reply for the "learn more" shortcut; it is not
	// sent to the model.
	Overview string
}

var (
	loadOnce  sync.Once
	loadedSet Set
)

// Load renders the embedded templates against the fixed company record.
// Safe for concurrent use; rendering happens once.
func Load() Set {
	loadOnce.Do(func() {
		loadedSet = Set{
			Base:       mustRender("base", baseRaw),
			Enhanced:   mustRender("enhanced", enhancedRaw),
			Email:      mustRender("email", emailRaw),
			Scheduling: mustRender("scheduling", schedulingRaw),
			Overview:   strings.TrimSpace(overviewRaw) + "\n",
		}
	})
	return loadedSet
}

func mustRender(name, raw string) string {
	tmpl, err := template.New(name).Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("parse prompt template %s: %v", name, err))
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, MaticStudio); err != nil {
		panic(fmt.Sprintf("render prompt template %s: %v", name, err))
	}
	return strings.TrimSpace(sb.String())
}
