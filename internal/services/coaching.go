package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/denotehq/denote/internal/gateway"
	"github.com/denotehq/denote/internal/metrics"
	"github.com/denotehq/denote/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TextGenerator is the slice of the AI gateway the coaching job needs.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts *gateway.GenerateOptions) (string, int, error)
}

// Lowered randomness for more consistent, analytical responses.
const coachingTemperature = 0.5

const coachingPromptTemplate = `As a professional Productivity Coach, your task is to analyze the following daily activity summary of a user.
Provide insights and actionable recommendations based on their behavior.

Analyze the data in these 3 dimensions:
1. Problem-Solving Style: How do they approach tasks? Are they systematic, iterative, etc.?
2. Core Goals: What seems to be their main focus based on their actions?
3. Collaboration Style: (If applicable) How do they interact with the AI?

After the analysis, provide 2 concrete, actionable recommendations to help them improve their workflow, learn a new skill, or be more efficient.
Format your entire response in Markdown.

--- USER ACTIVITY SUMMARY ---
%s
--- END OF SUMMARY ---`

// RunDailyAnalysis iterates every user row and generates a coaching report
// for each, based on that user's activity for the current calendar day. The
// per-user loop is sequential; a failure for one user is logged to the
// system error table and does not halt the rest of the batch.
func RunDailyAnalysis(ctx context.Context, db *gorm.DB, gen TextGenerator) {
	zap.L().Info("starting daily behavioral analysis for all users")

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		zap.L().Error("failed to list users for daily analysis", zap.Error(err))
		LogError(db, "RunDailyAnalysis", err.Error(), "")
		return
	}

	for _, user := range users {
		if strings.TrimSpace(user.Email) == "" {
			continue
		}
		if err := generateReportForUser(ctx, db, gen, user.Email); err != nil {
			zap.L().Warn("failed to generate report",
				zap.String("user", user.Email), zap.Error(err))
			LogError(db, "RunDailyAnalysis", err.Error(), user.Email)
			metrics.RecordReportFailed()
		}
	}

	zap.L().Info("daily behavioral analysis completed", zap.Int("users", len(users)))
}

// generateReportForUser aggregates one user's activity for today, asks the
// model for an analysis, and appends the result as a report row. Users with
// no activity today are skipped without writing a row.
func generateReportForUser(ctx context.Context, db *gorm.DB, gen TextGenerator, email string) error {
	summary, err := dailyActivitySummary(db, email, time.Now())
	if err != nil {
		return err
	}
	if summary == "" {
		zap.L().Debug("no activity today, skipping report", zap.String("user", email))
		metrics.RecordReportSkipped()
		return nil
	}

	prompt := fmt.Sprintf(coachingPromptTemplate, summary)

	temperature := coachingTemperature
	content, _, err := gen.Generate(ctx, prompt, &gateway.GenerateOptions{Temperature: &temperature})
	if err != nil {
		return err
	}

	report := models.CoachingReport{
		ReportID:      "REP-" + uuid.NewString(),
		UserEmail:     email,
		ReportDate:    time.Now(),
		ReportContent: content,
	}
	if err := db.Create(&report).Error; err != nil {
		return err
	}

	metrics.RecordReportGenerated()
	zap.L().Info("generated coaching report",
		zap.String("user", email), zap.String("reportId", report.ReportID))
	return nil
}

// dailyActivitySummary renders the user's activity between local midnight
// and now as a bulleted timeline in append order. Returns "" when the user
// has no activity today.
func dailyActivitySummary(db *gorm.DB, email string, now time.Time) (string, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var activities []models.ActivityRecord
	err := db.Where("user_id = ? AND timestamp >= ? AND timestamp <= ?", email, midnight, now).
		Order("seq").
		Find(&activities).Error
	if err != nil {
		return "", err
	}

	if len(activities) == 0 {
		return "", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total activities today: %d\n\n", len(activities))
	b.WriteString("Activity Timeline:\n")
	for _, activity := range activities {
		fmt.Fprintf(&b, "- [%s] %s: %s\n",
			activity.Timestamp.Format("15:04:05"),
			activity.ActivityType,
			renderDetails(activity.Details))
	}

	return b.String(), nil
}

// renderDetails flattens a details payload for the timeline: plain strings
// stay plain, anything else stays compact JSON.
func renderDetails(details models.JSON) string {
	raw := []byte(details.JSON)
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// ReportResult carries the outcome of a latest-report lookup. The zero-row
// case and internal failures are both expressed as a not-found result with a
// descriptive message, never as an error.
type ReportResult struct {
	Found      bool   `json:"found"`
	ReportID   string `json:"Report_ID,omitempty"`
	ReportDate string `json:"Report_Date,omitempty"`
	Content    string `json:"Report_Content,omitempty"`
	Message    string `json:"message,omitempty"`
}

// LatestReport returns the most recent coaching report for email, by report
// date with insert order as tiebreak.
func LatestReport(db *gorm.DB, email string) ReportResult {
	var report models.CoachingReport
	err := db.Where("user_id = ?", email).
		Order("report_date DESC").
		Order("seq DESC").
		First(&report).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReportResult{
				Found:   false,
				Message: "No coaching report is available yet. Reports are generated daily from your activity.",
			}
		}
		zap.L().Error("failed to fetch latest coaching report",
			zap.String("user", email), zap.Error(err))
		return ReportResult{
			Found:   false,
			Message: "The coaching report could not be retrieved at this time.",
		}
	}

	return ReportResult{
		Found:      true,
		ReportID:   report.ReportID,
		ReportDate: report.ReportDate.Format(time.RFC3339),
		Content:    report.ReportContent,
	}
}
