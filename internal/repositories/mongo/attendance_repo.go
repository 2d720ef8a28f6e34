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

type AttendanceRepository interface {
	Insert(ctx context.Context, a *models.Attendance) error
	FindByEmployeeAndDay(ctx context.Context, employeeID primitive.ObjectID, day time.Time) (*models.Attendance, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	ListByDay(ctx context.Context, day time.Time) ([]models.Attendance, error)
	ListAll(ctx context.Context) ([]models.Attendance, error)
}

type attendanceRepo struct {
	col *mongo.Collection
}

func NewAttendanceRepo(db *mongo.Database) AttendanceRepository {
	return &attendanceRepo{col: db.Collection("attendance")}
}

func (r *attendanceRepo) Insert(ctx context.Context, a *models.Attendance) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = id
	}
	return nil
}

func (r *attendanceRepo) FindByEmployeeAndDay(ctx context.Context, employeeID primitive.ObjectID, day time.Time) (*models.Attendance, error) {
	var a models.Attendance
	err := r.col.FindOne(ctx, bson.M{
		"employee_id": employeeID,
		"date": bson.M{
			"$gte": day,
			"$lt":  day.Add(24 * time.Hour),
		},
	}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *attendanceRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	return err
}

func (r *attendanceRepo) ListByDay(ctx context.Context, day time.Time) ([]models.Attendance, error) {
	return r.list(ctx, bson.M{"date": bson.M{
		"$gte": day,
		"$lt":  day.Add(24 * time.Hour),
	}})
}

func (r *attendanceRepo) ListAll(ctx context.Context) ([]models.Attendance, error) {
	return r.list(ctx, bson.M{})
}

func (r *attendanceRepo) list(ctx context.Context, filter bson.M) ([]models.Attendance, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Attendance{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
