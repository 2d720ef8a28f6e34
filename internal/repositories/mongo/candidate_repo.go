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

type CandidateRepository interface {
	Insert(ctx context.Context, c *models.Candidate) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Candidate, error)
	FindByEmail(ctx context.Context, email string) (*models.Candidate, error)
	Search(ctx context.Context, search string) ([]models.Candidate, error)
	Update(ctx context.Context, id primitive.ObjectID, name, email string) (*models.Candidate, error)
	SetResume(ctx context.Context, id primitive.ObjectID, ref string) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type candidateRepo struct {
	col *mongo.Collection
}

func NewCandidateRepo(db *mongo.Database) CandidateRepository {
	return &candidateRepo{col: db.Collection("candidates")}
}

func (r *candidateRepo) Insert(ctx context.Context, c *models.Candidate) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.Status == "" {
		c.Status = models.CandidatePending
	}
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}
	return nil
}

func (r *candidateRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Candidate, error) {
	var c models.Candidate
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &c, err
}

func (r *candidateRepo) FindByEmail(ctx context.Context, email string) (*models.Candidate, error) {
	var c models.Candidate
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &c, err
}

func (r *candidateRepo) Search(ctx context.Context, search string) ([]models.Candidate, error) {
	filter := bson.M{}
	if search != "" {
		re := primitive.Regex{Pattern: search, Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
		}}
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Candidate{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *candidateRepo) Update(ctx context.Context, id primitive.ObjectID, name, email string) (*models.Candidate, error) {
	var c models.Candidate
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name, "email": email}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &c, err
}

func (r *candidateRepo) SetResume(ctx context.Context, id primitive.ObjectID, ref string) error {
	update := bson.M{"$set": bson.M{"resume": ref}}
	if ref == "" {
		update = bson.M{"$unset": bson.M{"resume": ""}}
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *candidateRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	return err
}

func (r *candidateRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
