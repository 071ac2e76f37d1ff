package models

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"_id"`

	// public lookup key, embedded in QR codes
	CustomID string `gorm:"size:64;uniqueIndex;not null" json:"id"`

	Name  string `gorm:"size:255;index" json:"name"`
	Email string `gorm:"size:255;index" json:"email"`
	Phone string `gorm:"size:32;index" json:"phone"`

	// Fold of Name and Email. SQLite LOWER() only folds ASCII, so
	// case-insensitive lookups compare against these instead.
	NameLower  string `gorm:"size:255;index" json:"-"`
	EmailLower string `gorm:"size:255;index" json:"-"`

	Gender string `json:"gender"`
	Age    string `json:"age"`
	Source string `json:"source"`

	IsCheckedIn bool       `gorm:"not null;default:false" json:"isCheckedIn"`
	CheckedInAt *time.Time `json:"checkedInAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Fold is the case folding used for name and email matching.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (g *Guest) BeforeSave(tx *gorm.DB) error {
	g.NameLower = Fold(g.Name)
	g.EmailLower = Fold(g.Email)
	return nil
}

// InternalID renders the store key the way it appears in URLs.
func (g Guest) InternalID() string {
	return strconv.FormatUint(uint64(g.ID), 10)
}

// MatchesToken reports whether token names this guest by either id.
func (g Guest) MatchesToken(token string) bool {
	if token == "" {
		return false
	}
	return g.CustomID == token || (g.ID != 0 && g.InternalID() == token)
}
