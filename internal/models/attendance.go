package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
)

type Attendance struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID primitive.ObjectID `bson:"employee_id" json:"employee_id"`
	Date       time.Time          `bson:"date" json:"date"` // truncated to day, UTC
	Status     string             `bson:"status" json:"status"` // present|absent
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
