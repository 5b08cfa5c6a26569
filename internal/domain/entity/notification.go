package entity

import "time"

// Tipos de notificación.
const (
	NotificationRoleAssigned    = "role_assigned"
	NotificationProductApproved = "product_approved"
	NotificationProductRejected = "product_rejected"
	NotificationRFQCreated      = "rfq_created"
	NotificationRFQResubmitted  = "rfq_resubmitted"
	NotificationRFQUpdated      = "rfq_updated"
	NotificationRFQResponse     = "rfq_response"
)

// Notification mensaje para un usuario. Se crea en modo best-effort.
type Notification struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
