package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nimbushr/hrms/internal/models"
	"github.com/nimbushr/hrms/internal/utils"
)

type LeaveRepository interface {
	Insert(ctx context.Context, l *models.Leave) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Leave, error)
	List(ctx context.Context, status string) ([]models.Leave, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

type leaveRepo struct {
	col *mongo.Collection
}

func NewLeaveRepo(db *mongo.Database) LeaveRepository {
	return &leaveRepo{col: db.Collection("leaves")}
}

func (r *leaveRepo) Insert(ctx context.Context, l *models.Leave) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	if l.Status == "" {
		l.Status = models.LeavePending
	}
	res, err := r.col.InsertOne(ctx, l)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		l.ID = id
	}
	return nil
}

func (r *leaveRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Leave, error) {
	var l models.Leave
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &l, err
}

func (r *leaveRepo) List(ctx context.Context, status string) ([]models.Leave, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Leave{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *leaveRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
