package config

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the handlers rely on. Safe to call on
// every startup; CreateMany is a no-op for indexes that already exist.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_user_email").SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("candidates").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_candidate_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_created"),
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("employees").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_employee_email").SetUnique(true),
	})
	if err != nil {
		return err
	}

	// One attendance record per employee per day.
	_, err = db.Collection("attendance").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetName("uniq_employee_day").SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("leaves").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("by_status_created"),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("file_metadata").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "file_id", Value: 1}},
		Options: options.Index().SetName("uniq_file_id").SetUnique(true),
	})
	return err
}
