package files

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nimbushr/hrms/internal/utils"
)

// Upload is one inbound file: the stream plus what the client declared
// about it.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Owner       map[string]string // informational association, not access control
	Body        io.Reader
}

// Metadata is the 1:1 companion document of a stored blob.
type Metadata struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	FileID      primitive.ObjectID `bson:"file_id" json:"file_id"`
	Filename    string             `bson:"filename" json:"filename"`
	ContentType string             `bson:"content_type" json:"content_type"`
	Size        int64              `bson:"size" json:"size"`
	Owner       map[string]string  `bson:"owner,omitempty" json:"owner,omitempty"`
	UploadAt    time.Time          `bson:"upload_at" json:"upload_at"`
}

// Content is an opened file ready to be piped to a response.
type Content struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// ReplaceResult reports which branch a replace took. OldDeleted is false
// when the superseded file could not be removed; the new file is stored
// either way and the old blob is left for the orphan sweep.
type ReplaceResult struct {
	ID         string
	OldDeleted bool
}

// Store is the attachment-store contract the services depend on.
type Store interface {
	Store(ctx context.Context, up Upload, policy Policy) (string, error)
	Open(ctx context.Context, ref Ref) (*Content, error)
	Delete(ctx context.Context, ref Ref) error
	Replace(ctx context.Context, old Ref, up Upload, policy Policy) (ReplaceResult, error)
}

// GridStore keeps payloads in GridFS with a metadata document per blob, and
// serves pre-migration files from the legacy uploads tree.
type GridStore struct {
	bucket *gridfs.Bucket
	meta   *mongo.Collection
	legacy afero.Fs
	root   string // directory containing the legacy "uploads" tree
	log    *logrus.Logger
}

func NewGridStore(db *mongo.Database, legacy afero.Fs, legacyRoot string, log *logrus.Logger) (*GridStore, error) {
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		return nil, err
	}
	return &GridStore{
		bucket: bucket,
		meta:   db.Collection("file_metadata"),
		legacy: legacy,
		root:   legacyRoot,
		log:    log,
	}, nil
}

// Store validates the upload against the policy, streams the payload into
// GridFS under a fresh id, and records metadata. On a failed or oversized
// write the upload stream is aborted so no partial blob persists. A failed
// metadata insert triggers a best-effort blob rollback; if that also fails
// the orphan is left for the sweep.
func (s *GridStore) Store(ctx context.Context, up Upload, policy Policy) (string, error) {
	const op = "GridStore.Store"

	if err := policy.Validate(up.ContentType, up.Size); err != nil {
		return "", err
	}

	fileID := primitive.NewObjectID()
	opts := options.GridFSUpload().SetMetadata(bson.M{
		"content_type": up.ContentType,
		"owner":        up.Owner,
	})

	us, err := s.bucket.OpenUploadStreamWithID(fileID, up.Filename, opts)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to open blob upload stream", err)
	}
	if dl, ok := ctx.Deadline(); ok {
		_ = us.SetWriteDeadline(dl)
	}

	n, err := io.Copy(us, io.LimitReader(up.Body, policy.MaxBytes+1))
	if err != nil {
		_ = us.Abort()
		return "", utils.E(utils.CodeInternal, op, "failed to write blob", err)
	}
	if n > policy.MaxBytes {
		_ = us.Abort()
		return "", utils.E(utils.CodeInvalidArgument, op, "payload exceeds the declared size limit", nil)
	}
	if err := us.Close(); err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to finalize blob", err)
	}

	md := Metadata{
		FileID:      fileID,
		Filename:    up.Filename,
		ContentType: up.ContentType,
		Size:        n,
		Owner:       up.Owner,
		UploadAt:    time.Now().UTC(),
	}
	if _, err := s.meta.InsertOne(ctx, md); err != nil {
		if derr := s.bucket.Delete(fileID); derr != nil {
			s.log.WithError(derr).WithField("file_id", fileID.Hex()).
				Warn("orphaned blob after metadata insert failure")
		}
		return "", utils.E(utils.CodeInternal, op, "failed to persist file metadata", err)
	}

	return fileID.Hex(), nil
}

// Open resolves a reference to streamable content. By-id refs require both
// the metadata document and the blob; legacy paths are read from the
// uploads tree with the content type inferred from the extension.
func (s *GridStore) Open(ctx context.Context, ref Ref) (*Content, error) {
	const op = "GridStore.Open"

	switch ref.Kind {
	case RefID:
		var md Metadata
		err := s.meta.FindOne(ctx, bson.M{"file_id": ref.ID}).Decode(&md)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.E(utils.CodeNotFound, op, "file metadata not found", err)
		}
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to load file metadata", err)
		}

		ds, err := s.bucket.OpenDownloadStream(ref.ID)
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "file not found", err)
		}
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to open blob download stream", err)
		}
		if dl, ok := ctx.Deadline(); ok {
			_ = ds.SetReadDeadline(dl)
		}

		return &Content{
			Filename:    md.Filename,
			ContentType: md.ContentType,
			Size:        md.Size,
			Body:        ds,
		}, nil

	case RefLegacyPath:
		return s.openLegacy(ref.Path)

	default:
		return nil, utils.E(utils.CodeNotFound, op, "no file reference", nil)
	}
}

// Delete removes a stored file and its metadata. Missing blobs and missing
// legacy files are tolerated so the operation is safe to repeat; none and
// external refs are no-ops.
func (s *GridStore) Delete(ctx context.Context, ref Ref) error {
	const op = "GridStore.Delete"

	switch ref.Kind {
	case RefID:
		if err := s.bucket.Delete(ref.ID); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
			return utils.E(utils.CodeInternal, op, "failed to delete blob", err)
		}
		if _, err := s.meta.DeleteOne(ctx, bson.M{"file_id": ref.ID}); err != nil {
			return utils.E(utils.CodeInternal, op, "failed to delete file metadata", err)
		}
		return nil

	case RefLegacyPath:
		return s.deleteLegacy(ref.Path)

	default:
		return nil
	}
}

// Replace supersedes old with up: validate first so a rejected upload never
// destroys the existing file, then best-effort delete of the old reference,
// then Store. The owning record must only be updated with the returned id,
// which guarantees it never points at a blob that failed to store.
func (s *GridStore) Replace(ctx context.Context, old Ref, up Upload, policy Policy) (ReplaceResult, error) {
	if err := policy.Validate(up.ContentType, up.Size); err != nil {
		return ReplaceResult{}, err
	}

	res := ReplaceResult{OldDeleted: true}
	if old.Kind == RefID || old.Kind == RefLegacyPath {
		if err := s.Delete(ctx, old); err != nil {
			res.OldDeleted = false
			s.log.WithError(err).WithField("ref", old.String()).
				Warn("failed to delete superseded file, continuing with upload")
		}
	}

	id, err := s.Store(ctx, up, policy)
	if err != nil {
		return ReplaceResult{}, err
	}
	res.ID = id
	return res, nil
}
