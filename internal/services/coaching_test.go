package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/denotehq/denote/internal/gateway"
	"github.com/denotehq/denote/internal/models"
)

// fakeGenerator records prompts and returns canned text.
type fakeGenerator struct {
	prompts []string
	temps   []*float64
	text    string
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, opts *gateway.GenerateOptions) (string, int, error) {
	f.prompts = append(f.prompts, prompt)
	if opts != nil {
		f.temps = append(f.temps, opts.Temperature)
	} else {
		f.temps = append(f.temps, nil)
	}
	if f.err != nil {
		return "", 0, f.err
	}
	return f.text, 10, nil
}

func TestRunDailyAnalysis(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "active@example.com", models.RoleUser)
	createUser(t, db, "idle@example.com", models.RoleUser)

	LogActivity(db, ActivityInput{
		UserEmail:    "active@example.com",
		ActivityType: ActivityChatMessage,
		Details:      "asked about deployment",
	})
	LogActivity(db, ActivityInput{
		UserEmail:    "active@example.com",
		ActivityType: ActivityCreateProject,
		Details:      "Created project Alpha",
	})

	gen := &fakeGenerator{text: "## Analysis\nGood progress."}
	RunDailyAnalysis(context.Background(), db, gen)

	// Exactly one report, for the active user only.
	var reports []models.CoachingReport
	if err := db.Find(&reports).Error; err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 {
		t.Fatalf("Expected 1 report, got %d", len(reports))
	}
	if reports[0].UserEmail != "active@example.com" {
		t.Errorf("Expected report for active user, got %q", reports[0].UserEmail)
	}
	if !strings.HasPrefix(reports[0].ReportID, "REP-") {
		t.Errorf("Expected REP- prefixed id, got %q", reports[0].ReportID)
	}
	if reports[0].ReportContent != "## Analysis\nGood progress." {
		t.Errorf("Expected raw model text, got %q", reports[0].ReportContent)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("Expected 1 model call, got %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "Total activities today: 2") {
		t.Errorf("Expected activity count in prompt: %q", prompt)
	}
	if !strings.Contains(prompt, "CHAT_MESSAGE: asked about deployment") {
		t.Errorf("Expected timeline entry in prompt: %q", prompt)
	}
	if !strings.Contains(prompt, "--- USER ACTIVITY SUMMARY ---") {
		t.Errorf("Expected summary markers in prompt: %q", prompt)
	}

	if gen.temps[0] == nil || *gen.temps[0] != 0.5 {
		t.Errorf("Expected temperature 0.5, got %v", gen.temps[0])
	}
}

func TestRunDailyAnalysisContinuesAfterFailure(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "a@example.com", models.RoleUser)
	createUser(t, db, "b@example.com", models.RoleUser)

	LogActivity(db, ActivityInput{UserEmail: "a@example.com", ActivityType: ActivityChatMessage, Details: "x"})
	LogActivity(db, ActivityInput{UserEmail: "b@example.com", ActivityType: ActivityChatMessage, Details: "y"})

	gen := &fakeGenerator{err: errors.New("model unavailable")}
	RunDailyAnalysis(context.Background(), db, gen)

	// Both users were attempted despite the first failure.
	if len(gen.prompts) != 2 {
		t.Errorf("Expected 2 attempts, got %d", len(gen.prompts))
	}

	// Each failure was recorded.
	var errCount int64
	db.Model(&models.ErrorRecord{}).Count(&errCount)
	if errCount != 2 {
		t.Errorf("Expected 2 error rows, got %d", errCount)
	}

	var reportCount int64
	db.Model(&models.CoachingReport{}).Count(&reportCount)
	if reportCount != 0 {
		t.Errorf("Expected no reports on failure, got %d", reportCount)
	}
}

func TestDailyActivitySummaryWindow(t *testing.T) {
	db := setupTestDB(t)

	now := time.Now()
	yesterday := now.Add(-36 * time.Hour)

	old := models.ActivityRecord{
		ActivityID:   "ACT-old",
		UserEmail:    "dev@example.com",
		ActivityType: ActivityChatMessage,
		Timestamp:    yesterday,
	}
	if err := db.Create(&old).Error; err != nil {
		t.Fatal(err)
	}

	summary, err := dailyActivitySummary(db, "dev@example.com", now)
	if err != nil {
		t.Fatalf("dailyActivitySummary failed: %v", err)
	}
	if summary != "" {
		t.Errorf("Yesterday's activity must not count, got %q", summary)
	}
}

func TestLatestReport(t *testing.T) {
	db := setupTestDB(t)

	// No rows yet: sentinel, not an error.
	result := LatestReport(db, "dev@example.com")
	if result.Found {
		t.Error("Expected not found")
	}
	if !strings.Contains(result.Message, "No coaching report is available yet") {
		t.Errorf("Expected sentinel message, got %q", result.Message)
	}

	day1 := time.Date(2026, 8, 30, 20, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC)

	for _, r := range []models.CoachingReport{
		{ReportID: "REP-1", UserEmail: "dev@example.com", ReportDate: day1, ReportContent: "old"},
		{ReportID: "REP-2", UserEmail: "dev@example.com", ReportDate: day2, ReportContent: "new"},
		{ReportID: "REP-3", UserEmail: "other@example.com", ReportDate: day2, ReportContent: "theirs"},
	} {
		if err := db.Create(&r).Error; err != nil {
			t.Fatal(err)
		}
	}

	result = LatestReport(db, "dev@example.com")
	if !result.Found {
		t.Fatal("Expected a report")
	}
	if result.ReportID != "REP-2" || result.Content != "new" {
		t.Errorf("Expected the newest report for the user, got %+v", result)
	}
}

func TestLatestReportInsertOrderTiebreak(t *testing.T) {
	db := setupTestDB(t)

	day := time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC)
	for _, r := range []models.CoachingReport{
		{ReportID: "REP-first", UserEmail: "dev@example.com", ReportDate: day, ReportContent: "first"},
		{ReportID: "REP-second", UserEmail: "dev@example.com", ReportDate: day, ReportContent: "second"},
	} {
		if err := db.Create(&r).Error; err != nil {
			t.Fatal(err)
		}
	}

	result := LatestReport(db, "dev@example.com")
	if result.ReportID != "REP-second" {
		t.Errorf("Expected the later insert to win the tie, got %q", result.ReportID)
	}
}
