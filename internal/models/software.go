package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// TierList is a set of grantable access tiers stored as a comma-separated
// column, mirroring the catalog import format.
type TierList []AccessTier

// DefaultTiers is the full grantable set applied when a software entry is
// registered without an explicit tier list.
func DefaultTiers() TierList {
	return TierList{TierWrite, TierRead, TierAdmin}
}

// Value implements driver.Valuer.
func (l TierList) Value() (driver.Value, error) {
	parts := make([]string, 0, len(l))
	for _, t := range l {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ","), nil
}

// Scan implements sql.Scanner.
func (l *TierList) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported tier list column type %T", src)
	}

	if raw == "" {
		*l = nil
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make(TierList, 0, len(parts))
	for _, p := range parts {
		out = append(out, AccessTier(strings.TrimSpace(p)))
	}
	*l = out
	return nil
}

// Contains reports whether the list includes the given tier.
func (l TierList) Contains(tier AccessTier) bool {
	for _, t := range l {
		if t == tier {
			return true
		}
	}
	return false
}

// Software is a registered application that access can be requested for.
// Name uniqueness is enforced by the registry guard pre-check and backed by a
// unique index.
type Software struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	AccessLevels TierList  `gorm:"type:text" json:"access_levels"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Software) TableName() string {
	return "software"
}
