package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/denotehq/denote/internal/models"
	"github.com/denotehq/denote/internal/secrets"
	"github.com/denotehq/denote/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetUserProfile resolves the profile row for email, creating it with the
// default User role on first access.
func GetUserProfile(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Where("user_id = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	user = models.User{
		Email:       email,
		DisplayName: displayNameFromEmail(email),
		Role:        models.RoleUser,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	zap.L().Info("created user profile on first access", zap.String("user", email))
	return &user, nil
}

// IsAdmin reports whether the user row for email carries the Admin role.
// The comparison is case-insensitive; a missing user is simply not an admin.
func IsAdmin(db *gorm.DB, email string) (bool, error) {
	var user models.User
	err := db.Where("user_id = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return strings.EqualFold(user.Role, models.RoleAdmin), nil
}

// requireAdmin returns an Authorization error unless caller is an admin.
func requireAdmin(db *gorm.DB, caller, errorType string) error {
	ok, err := IsAdmin(db, caller)
	if err != nil {
		return err
	}
	if !ok {
		return types.AuthorizationError("Only admins can perform this operation.", errorType)
	}
	return nil
}

// ListUsers returns every user row. Admin only.
func ListUsers(db *gorm.DB, caller string) ([]models.User, error) {
	if err := requireAdmin(db, caller, "admin.users.list"); err != nil {
		return nil, err
	}

	var users []models.User
	if err := db.Order("user_id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// AddUser creates a new user row with the default User role. Admin only.
func AddUser(db *gorm.DB, caller, newEmail string) (*models.User, error) {
	if err := requireAdmin(db, caller, "admin.users.add"); err != nil {
		return nil, err
	}

	newEmail = strings.TrimSpace(newEmail)
	if newEmail == "" || !strings.Contains(newEmail, "@") {
		return nil, types.ValidationError("Invalid email format provided.", "admin.users.validation")
	}

	var count int64
	if err := db.Model(&models.User{}).Where("user_id = ?", newEmail).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, types.ConflictError(
			fmt.Sprintf("User with email %q already exists.", newEmail),
			"admin.users.duplicate",
		)
	}

	now := time.Now()
	user := models.User{
		Email:       newEmail,
		DisplayName: displayNameFromEmail(newEmail),
		Role:        models.RoleUser,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	zap.L().Info("admin added user", zap.String("admin", caller), zap.String("user", newEmail))
	return &user, nil
}

// GetSettings returns every config setting row as a name/value map. Secret
// values never appear here. Admin only.
func GetSettings(db *gorm.DB, caller string) (map[string]string, error) {
	if err := requireAdmin(db, caller, "admin.settings.list"); err != nil {
		return nil, err
	}

	var rows []models.ConfigSetting
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}

	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.SettingName != "" {
			settings[row.SettingName] = row.SettingValue
		}
	}
	return settings, nil
}

// UpdateSetting updates one setting. The two reserved API-key names are
// written to the secret store and never touch the table; any other name
// updates the existing row's value and fails with NotFound when the row is
// absent. Admin only.
func UpdateSetting(db *gorm.DB, store *secrets.Store, caller, name, value string) error {
	if err := requireAdmin(db, caller, "admin.settings.update"); err != nil {
		return err
	}

	if models.IsSecretSetting(name) {
		if err := store.Set(name, value); err != nil {
			return err
		}
		zap.L().Info("securely updated secret setting", zap.String("setting", name))
		return nil
	}

	// Existence is resolved with a read rather than inferred from the
	// update's affected-row count: the mysql driver counts rows changed,
	// not rows matched, so re-submitting the current value would otherwise
	// look like a missing row.
	var setting models.ConfigSetting
	if err := db.Where("setting_name = ?", name).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NotFoundError(
				fmt.Sprintf("Setting %q not found.", name),
				"admin.settings.notfound",
			)
		}
		return err
	}

	if err := db.Model(&models.ConfigSetting{}).
		Where("setting_name = ?", name).
		Update("setting_value", value).Error; err != nil {
		return err
	}

	zap.L().Info("updated setting", zap.String("setting", name))
	return nil
}

// displayNameFromEmail derives the default display name from the local part
// of the address.
func displayNameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
