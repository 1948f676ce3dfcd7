package models

import "time"

// AccessTier is one of the three grantable permission tiers, ranked
// Read < Write < Admin.
type AccessTier string

const (
	TierRead  AccessTier = "Read"
	TierWrite AccessTier = "Write"
	TierAdmin AccessTier = "Admin"
)

// ParseAccessTier validates a tier label.
func ParseAccessTier(s string) (AccessTier, bool) {
	switch AccessTier(s) {
	case TierRead, TierWrite, TierAdmin:
		return AccessTier(s), true
	}
	return "", false
}

// Rank returns the tier's position in the access hierarchy. Unknown labels
// rank 0, below every valid tier; callers reject them before comparing.
func (t AccessTier) Rank() int {
	switch t {
	case TierRead:
		return 1
	case TierWrite:
		return 2
	case TierAdmin:
		return 3
	}
	return 0
}

// Covers reports whether holding this tier already grants everything the
// wanted tier would. A Write holder covers Read but not Admin.
func (t AccessTier) Covers(want AccessTier) bool {
	return t.Rank() >= want.Rank()
}

// RequestStatus defines lifecycle states for access requests.
type RequestStatus string

const (
	// StatusPending indicates the request is awaiting a manager decision.
	StatusPending RequestStatus = "Pending"
	// StatusApproved indicates the request was granted.
	StatusApproved RequestStatus = "Approved"
	// StatusRejected indicates the request was denied.
	StatusRejected RequestStatus = "Rejected"
)

// ParseRequestStatus validates a status label.
func ParseRequestStatus(s string) (RequestStatus, bool) {
	switch RequestStatus(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return RequestStatus(s), true
	}
	return "", false
}

// AccessRequest is a user's request for an access tier on a software entry.
// Requests are never deleted; decided requests remain as an audit trail.
type AccessRequest struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	UserID     uint          `gorm:"not null;index:idx_requests_user_software" json:"user_id"`
	User       *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	SoftwareID uint          `gorm:"not null;index:idx_requests_user_software" json:"software_id"`
	Software   *Software     `gorm:"foreignKey:SoftwareID" json:"software,omitempty"`
	AccessType AccessTier    `gorm:"type:varchar(10);not null" json:"access_type"`
	Reason     string        `gorm:"type:text;not null" json:"reason"`
	Status     RequestStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// TableName overrides the default pluralization.
func (AccessRequest) TableName() string {
	return "requests"
}

// PendingConflictMeta describes this request for the conflict payload
// returned when a second pending request is attempted for the same pair.
func (r *AccessRequest) PendingConflictMeta() map[string]any {
	return map[string]any{
		"existingRequest": map[string]any{
			"id":         r.ID,
			"status":     r.Status,
			"accessType": r.AccessType,
			"reason":     r.Reason,
		},
	}
}

// CurrentAccessMeta describes the approved grant that already covers a
// newly requested tier.
func (r *AccessRequest) CurrentAccessMeta() map[string]any {
	return map[string]any{
		"currentAccess": map[string]any{
			"accessType": r.AccessType,
			"status":     r.Status,
		},
	}
}
