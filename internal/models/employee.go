package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Employee struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Role      string             `bson:"role,omitempty" json:"role,omitempty"`
	JoinDate  time.Time          `bson:"join_date" json:"join_date"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
