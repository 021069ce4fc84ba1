package prompt

import (
	"strings"
	"testing"
)

func TestLoadRendersCompanyRecord(t *testing.T) {
	t.Parallel()

	set := Load()

	for name, content := range map[string]string{
		"base":       set.Base,
		"enhanced":   set.Enhanced,
		"email":      set.Email,
		"scheduling": set.Scheduling,
	} {
		if strings.TrimSpace(content) == "" {
			t.Errorf("%s prompt is empty", name)
		}
		if strings.Contains(content, "{{") {
			t.Errorf("%s prompt has unrendered placeholders", name)
		}
		if !strings.Contains(content, MaticStudio.Name) {
			t.Errorf("%s prompt missing company name", name)
		}
	}

	if !strings.Contains(set.Scheduling, MaticStudio.LeadArchitect) {
		t.Error("scheduling prompt missing lead architect")
	}
}

func TestLoadOverview(t *testing.T) {
	t.Parallel()

	overview := Load().Overview
	if !strings.Contains(overview, "MATIC Studio") {
		t.Error("overview missing company name")
	}
	if !strings.HasSuffix(overview, "\n") {
		t.Error("overview must end with a newline")
	}
}

func TestExampleSets(t *testing.T) {
	t.Parallel()

	if len(FewShotExamples) == 0 {
		t.Fatal("no few-shot examples")
	}
	for i, ex := range FewShotExamples {
		if ex.User == "" || ex.Assistant == "" {
			t.Errorf("few-shot example %d has an empty side", i)
		}
	}
	if len(EmailExamples) == 0 {
		t.Fatal("no email examples")
	}
}
