package notify

import "cafe/internal/models"

// Kind names a record variant; it labels logs and metrics.
type Kind string

const (
	KindOrder        Kind = "order"
	KindReview       Kind = "review"
	KindContact      Kind = "contact"
	KindApplication  Kind = "application"
	KindStatusUpdate Kind = "status_update"
)

// Record is one of the closed set of notification payloads below.
type Record interface {
	Kind() Kind
	sealed()
}

type OrderRecord struct{ Order models.Order }

type ReviewRecord struct{ Comment models.Comment }

type ContactRecord struct{ Message models.ContactMessage }

type ApplicationRecord struct{ Application models.JobApplication }

// StatusUpdateRecord is sent when an admin moves an order to NewStatus.
// Order carries the values after the update.
type StatusUpdateRecord struct {
	Order     models.Order
	NewStatus models.OrderStatus
}

func (OrderRecord) Kind() Kind        { return KindOrder }
func (ReviewRecord) Kind() Kind       { return KindReview }
func (ContactRecord) Kind() Kind      { return KindContact }
func (ApplicationRecord) Kind() Kind  { return KindApplication }
func (StatusUpdateRecord) Kind() Kind { return KindStatusUpdate }

func (OrderRecord) sealed()        {}
func (ReviewRecord) sealed()       {}
func (ContactRecord) sealed()      {}
func (ApplicationRecord) sealed()  {}
func (StatusUpdateRecord) sealed() {}
