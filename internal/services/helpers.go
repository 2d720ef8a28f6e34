package services

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parseObjectID(s string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(s)
}

// dayOf truncates a timestamp to the start of its UTC day, the granularity
// attendance and leave-date rules work at.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
