package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL
// Key/value knobs for the issue detectors. Rows are seeded with defaults
// on first read and only ever updated afterwards.
// =========================================================

type IssueSetting struct {
	IssueSettingKey         string     `gorm:"column:issue_setting_key;type:varchar(64);primaryKey" json:"key"`
	IssueSettingValue       string     `gorm:"column:issue_setting_value;type:text;not null" json:"value"`
	IssueSettingDescription string     `gorm:"column:issue_setting_description;type:text" json:"description"`
	IssueSettingUpdatedBy   *uuid.UUID `gorm:"column:issue_setting_updated_by;type:uuid" json:"updated_by,omitempty"`
	IssueSettingUpdatedAt   time.Time  `gorm:"column:issue_setting_updated_at;not null;default:now()" json:"updated_at"`
}

func (IssueSetting) TableName() string {
	return "sepa_issue_settings"
}

func (m *IssueSetting) BeforeSave(tx *gorm.DB) error {
	m.IssueSettingUpdatedAt = time.Now()
	return nil
}
