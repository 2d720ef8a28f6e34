package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CandidatePending  = "pending"
	CandidateSelected = "selected"
)

type Candidate struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`

	// Resume holds the attachment reference: an attachment id for files in
	// the blob store, or a legacy "/uploads/..." path for records created
	// under the old filesystem scheme. Empty when no resume is on file.
	Resume string `bson:"resume,omitempty" json:"resume,omitempty"`

	Status    string    `bson:"status" json:"status"` // pending|selected
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
