package files

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SweepOrphans deletes blobs that have no metadata document. A crash (or a
// failed rollback) between the blob write and the metadata insert leaves
// exactly this state behind. Only blobs older than olderThan are touched so
// an upload that is mid-flight between the two writes is never collected.
// Returns the number of blobs removed.
func (s *GridStore) SweepOrphans(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	cur, err := s.bucket.GetFilesCollection().Find(ctx, bson.M{
		"uploadDate": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	removed := 0
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return removed, err
		}

		n, err := s.meta.CountDocuments(ctx, bson.M{"file_id": doc.ID})
		if err != nil {
			return removed, err
		}
		if n > 0 {
			continue
		}

		if err := s.bucket.Delete(doc.ID); err != nil {
			s.log.WithError(err).WithField("file_id", doc.ID.Hex()).
				Warn("failed to sweep orphaned blob")
			continue
		}
		removed++
	}
	if err := cur.Err(); err != nil {
		return removed, err
	}

	if removed > 0 {
		s.log.WithField("removed", removed).Info("swept orphaned blobs")
	}
	return removed, nil
}
