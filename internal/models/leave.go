package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

type Leave struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID primitive.ObjectID `bson:"employee_id" json:"employee_id"`
	Reason     string             `bson:"reason" json:"reason"`
	StartDate  time.Time          `bson:"start_date" json:"start_date"`
	EndDate    time.Time          `bson:"end_date" json:"end_date"`
	Status     string             `bson:"status" json:"status"` // pending|approved|rejected

	// DocURL holds the supporting-document reference: an attachment id, a
	// legacy path, or an external http(s) URL.
	DocURL string `bson:"doc_url,omitempty" json:"doc_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// LeaveWithEmployee is the list-view shape: a leave joined with the owning
// employee's display fields.
type LeaveWithEmployee struct {
	Leave         `bson:",inline"`
	EmployeeName  string `json:"employee_name"`
	EmployeeEmail string `json:"employee_email"`
}
