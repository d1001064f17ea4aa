package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/denotehq/denote/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity types written to the activity log.
const (
	ActivityChatMessage   = "CHAT_MESSAGE"
	ActivityCreateProject = "CREATE_PROJECT"
	ActivityAddUser       = "ADD_USER"
	ActivityUpdateSetting = "UPDATE_SETTING"
)

// ActivityInput describes one activity to append. Details may be any
// JSON-marshalable payload; its shape varies by activity type.
type ActivityInput struct {
	UserEmail     string
	ProjectID     string
	ActivityType  string
	Details       interface{}
	APICallCount  int
	APITokenCount int
}

// LogActivity appends one row to the activity log. The log is non-critical:
// a failed write is recorded best-effort and swallowed so it can never
// cascade into the calling operation.
func LogActivity(db *gorm.DB, input ActivityInput) {
	details, err := json.Marshal(input.Details)
	if err != nil {
		details = []byte(fmt.Sprintf("%q", fmt.Sprint(input.Details)))
	}

	record := models.ActivityRecord{
		ActivityID:    "ACT-" + uuid.NewString(),
		UserEmail:     input.UserEmail,
		ProjectID:     input.ProjectID,
		ActivityType:  input.ActivityType,
		Details:       models.JSON{JSON: datatypes.JSON(details)},
		Timestamp:     time.Now(),
		APICallCount:  input.APICallCount,
		APITokenCount: input.APITokenCount,
	}

	if err := db.Create(&record).Error; err != nil {
		zap.L().Error("failed to log activity",
			zap.String("activityType", input.ActivityType),
			zap.String("user", input.UserEmail),
			zap.Error(err))
		LogError(db, "LogActivity", err.Error(), input.UserEmail)
		return
	}

	zap.L().Debug("logged activity",
		zap.String("activityType", input.ActivityType),
		zap.String("user", input.UserEmail))
}

// LogError appends one row to the system error log. Best-effort: if the
// write itself fails the failure is logged locally as a last resort and
// never propagated.
func LogError(db *gorm.DB, functionName, errorMessage, userEmail string) {
	record := models.ErrorRecord{
		ErrorID:      "ERR-" + uuid.NewString(),
		Timestamp:    time.Now(),
		FunctionName: functionName,
		ErrorMessage: errorMessage,
		UserEmail:    userEmail,
	}

	if err := db.Create(&record).Error; err != nil {
		zap.L().Error("failed to write system error record",
			zap.String("functionName", functionName),
			zap.String("originalError", errorMessage),
			zap.Error(err))
	}
}
