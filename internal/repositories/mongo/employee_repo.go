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

type EmployeeRepository interface {
	Insert(ctx context.Context, e *models.Employee) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Employee, error)
	Search(ctx context.Context, search string) ([]models.Employee, error)
	ListByName(ctx context.Context) ([]models.Employee, error)
	Update(ctx context.Context, id primitive.ObjectID, e *models.Employee) (*models.Employee, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type employeeRepo struct {
	col *mongo.Collection
}

func NewEmployeeRepo(db *mongo.Database) EmployeeRepository {
	return &employeeRepo{col: db.Collection("employees")}
}

func (r *employeeRepo) Insert(ctx context.Context, e *models.Employee) error {
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.JoinDate.IsZero() {
		e.JoinDate = now
	}
	res, err := r.col.InsertOne(ctx, e)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = id
	}
	return nil
}

func (r *employeeRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	var e models.Employee
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &e, err
}

func (r *employeeRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Employee, error) {
	out := map[primitive.ObjectID]models.Employee{}
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var e models.Employee
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out[e.ID] = e
	}
	return out, cur.Err()
}

func (r *employeeRepo) Search(ctx context.Context, search string) ([]models.Employee, error) {
	filter := bson.M{}
	if search != "" {
		re := primitive.Regex{Pattern: search, Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
			bson.M{"role": re},
		}}
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "join_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Employee{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *employeeRepo) ListByName(ctx context.Context) ([]models.Employee, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Employee{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *employeeRepo) Update(ctx context.Context, id primitive.ObjectID, e *models.Employee) (*models.Employee, error) {
	set := bson.M{"name": e.Name, "email": e.Email, "role": e.Role}
	if !e.JoinDate.IsZero() {
		set["join_date"] = e.JoinDate
	}

	var out models.Employee
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &out, err
}

func (r *employeeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
