package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nimbushr/hrms/internal/files"
	"github.com/nimbushr/hrms/internal/models"
	"github.com/nimbushr/hrms/internal/utils"
)

// In-memory doubles for the repository and store interfaces.

type fakeObject struct {
	data        []byte
	filename    string
	contentType string
}

type fakeStore struct {
	objects    map[string]fakeObject
	legacy     map[string][]byte
	failDelete bool
	failStore  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects: map[string]fakeObject{},
		legacy:  map[string][]byte{},
	}
}

func (s *fakeStore) Store(ctx context.Context, up files.Upload, policy files.Policy) (string, error) {
	if err := policy.Validate(up.ContentType, up.Size); err != nil {
		return "", err
	}
	if s.failStore {
		return "", utils.E(utils.CodeInternal, "fakeStore.Store", "failed to write blob", errors.New("boom"))
	}
	data, err := io.ReadAll(up.Body)
	if err != nil {
		return "", err
	}
	id := primitive.NewObjectID().Hex()
	s.objects[id] = fakeObject{data: data, filename: up.Filename, contentType: up.ContentType}
	return id, nil
}

func (s *fakeStore) Open(ctx context.Context, ref files.Ref) (*files.Content, error) {
	const op = "fakeStore.Open"
	switch ref.Kind {
	case files.RefID:
		ob, ok := s.objects[ref.ID.Hex()]
		if !ok {
			return nil, utils.E(utils.CodeNotFound, op, "file not found", nil)
		}
		return &files.Content{
			Filename:    ob.filename,
			ContentType: ob.contentType,
			Size:        int64(len(ob.data)),
			Body:        io.NopCloser(bytes.NewReader(ob.data)),
		}, nil
	case files.RefLegacyPath:
		data, ok := s.legacy[ref.Path]
		if !ok {
			return nil, utils.E(utils.CodeNotFound, op, "file not found", nil)
		}
		return &files.Content{
			Filename:    path.Base(ref.Path),
			ContentType: files.TypeByExtension(ref.Path),
			Size:        int64(len(data)),
			Body:        io.NopCloser(bytes.NewReader(data)),
		}, nil
	default:
		return nil, utils.E(utils.CodeNotFound, op, "no file reference", nil)
	}
}

func (s *fakeStore) Delete(ctx context.Context, ref files.Ref) error {
	if s.failDelete {
		return utils.E(utils.CodeInternal, "fakeStore.Delete", "failed to delete blob", errors.New("boom"))
	}
	switch ref.Kind {
	case files.RefID:
		delete(s.objects, ref.ID.Hex())
	case files.RefLegacyPath:
		delete(s.legacy, ref.Path)
	}
	return nil
}

func (s *fakeStore) Replace(ctx context.Context, old files.Ref, up files.Upload, policy files.Policy) (files.ReplaceResult, error) {
	if err := policy.Validate(up.ContentType, up.Size); err != nil {
		return files.ReplaceResult{}, err
	}
	res := files.ReplaceResult{OldDeleted: true}
	if old.Kind == files.RefID || old.Kind == files.RefLegacyPath {
		if err := s.Delete(ctx, old); err != nil {
			res.OldDeleted = false
		}
	}
	id, err := s.Store(ctx, up, policy)
	if err != nil {
		return files.ReplaceResult{}, err
	}
	res.ID = id
	return res, nil
}

type fakeCandidateRepo struct {
	byID map[primitive.ObjectID]*models.Candidate
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{byID: map[primitive.ObjectID]*models.Candidate{}}
}

func (r *fakeCandidateRepo) Insert(ctx context.Context, c *models.Candidate) error {
	c.ID = primitive.NewObjectID()
	if c.Status == "" {
		c.Status = models.CandidatePending
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeCandidateRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Candidate, error) {
	if c, ok := r.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeCandidateRepo) FindByEmail(ctx context.Context, email string) (*models.Candidate, error) {
	for _, c := range r.byID {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeCandidateRepo) Search(ctx context.Context, search string) ([]models.Candidate, error) {
	out := []models.Candidate{}
	for _, c := range r.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCandidateRepo) Update(ctx context.Context, id primitive.ObjectID, name, email string) (*models.Candidate, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	c.Name, c.Email = name, email
	cp := *c
	return &cp, nil
}

func (r *fakeCandidateRepo) SetResume(ctx context.Context, id primitive.ObjectID, ref string) error {
	if c, ok := r.byID[id]; ok {
		c.Resume = ref
	}
	return nil
}

func (r *fakeCandidateRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if c, ok := r.byID[id]; ok {
		c.Status = status
	}
	return nil
}

func (r *fakeCandidateRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.byID, id)
	return nil
}

type fakeEmployeeRepo struct {
	byID map[primitive.ObjectID]*models.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{byID: map[primitive.ObjectID]*models.Employee{}}
}

func (r *fakeEmployeeRepo) Insert(ctx context.Context, e *models.Employee) error {
	e.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if e.JoinDate.IsZero() {
		e.JoinDate = now
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	cp := *e
	r.byID[e.ID] = &cp
	return nil
}

func (r *fakeEmployeeRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	if e, ok := r.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeEmployeeRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Employee, error) {
	out := map[primitive.ObjectID]models.Employee{}
	for _, id := range ids {
		if e, ok := r.byID[id]; ok {
			out[id] = *e
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Search(ctx context.Context, search string) ([]models.Employee, error) {
	out := []models.Employee{}
	for _, e := range r.byID {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) ListByName(ctx context.Context) ([]models.Employee, error) {
	return r.Search(ctx, "")
}

func (r *fakeEmployeeRepo) Update(ctx context.Context, id primitive.ObjectID, e *models.Employee) (*models.Employee, error) {
	cur, ok := r.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cur.Name, cur.Email, cur.Role = e.Name, e.Email, e.Role
	if !e.JoinDate.IsZero() {
		cur.JoinDate = e.JoinDate
	}
	cp := *cur
	return &cp, nil
}

func (r *fakeEmployeeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.byID, id)
	return nil
}

type fakeLeaveRepo struct {
	byID map[primitive.ObjectID]*models.Leave
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{byID: map[primitive.ObjectID]*models.Leave{}}
}

func (r *fakeLeaveRepo) Insert(ctx context.Context, l *models.Leave) error {
	l.ID = primitive.NewObjectID()
	if l.Status == "" {
		l.Status = models.LeavePending
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	cp := *l
	r.byID[l.ID] = &cp
	return nil
}

func (r *fakeLeaveRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Leave, error) {
	if l, ok := r.byID[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeLeaveRepo) List(ctx context.Context, status string) ([]models.Leave, error) {
	out := []models.Leave{}
	for _, l := range r.byID {
		if status == "" || l.Status == status {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	l, ok := r.byID[id]
	if !ok {
		return utils.ErrNotFound
	}
	l.Status = status
	return nil
}

type fakeAttendanceRepo struct {
	byID map[primitive.ObjectID]*models.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{byID: map[primitive.ObjectID]*models.Attendance{}}
}

func (r *fakeAttendanceRepo) Insert(ctx context.Context, a *models.Attendance) error {
	a.ID = primitive.NewObjectID()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	cp := *a
	r.byID[a.ID] = &cp
	return nil
}

func (r *fakeAttendanceRepo) FindByEmployeeAndDay(ctx context.Context, employeeID primitive.ObjectID, day time.Time) (*models.Attendance, error) {
	for _, a := range r.byID {
		if a.EmployeeID == employeeID && !a.Date.Before(day) && a.Date.Before(day.Add(24*time.Hour)) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeAttendanceRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if a, ok := r.byID[id]; ok {
		a.Status = status
	}
	return nil
}

func (r *fakeAttendanceRepo) ListByDay(ctx context.Context, day time.Time) ([]models.Attendance, error) {
	out := []models.Attendance{}
	for _, a := range r.byID {
		if !a.Date.Before(day) && a.Date.Before(day.Add(24*time.Hour)) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListAll(ctx context.Context) ([]models.Attendance, error) {
	out := []models.Attendance{}
	for _, a := range r.byID {
		out = append(out, *a)
	}
	return out, nil
}
