package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/nimbushr/hrms/internal/files"
	"github.com/nimbushr/hrms/internal/models"
	mongorepo "github.com/nimbushr/hrms/internal/repositories/mongo"
	"github.com/nimbushr/hrms/internal/utils"
)

type CandidateService interface {
	List(ctx context.Context, search string) ([]models.Candidate, error)
	Create(ctx context.Context, name, email, uploadedBy string, up *files.Upload) (*models.Candidate, error)
	UploadResume(ctx context.Context, id, uploadedBy string, up files.Upload) (*models.Candidate, error)
	Update(ctx context.Context, id, name, email string) (*models.Candidate, error)
	Delete(ctx context.Context, id string) error
	Promote(ctx context.Context, id string) (*models.Candidate, *models.Employee, error)
	Resume(ctx context.Context, id string) (*files.Content, error)
}

type candidateService struct {
	candidates mongorepo.CandidateRepository
	employees  mongorepo.EmployeeRepository
	store      files.Store
	log        *logrus.Logger
}

func NewCandidateService(candidates mongorepo.CandidateRepository, employees mongorepo.EmployeeRepository, store files.Store, log *logrus.Logger) CandidateService {
	return &candidateService{candidates: candidates, employees: employees, store: store, log: log}
}

func (s *candidateService) List(ctx context.Context, search string) ([]models.Candidate, error) {
	const op = "CandidateService.List"

	out, err := s.candidates.Search(ctx, search)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list candidates", err)
	}
	return out, nil
}

// Create stores the resume (when one is supplied) before the candidate
// document, so a failed upload leaves no candidate and a failed insert
// never leaves a candidate pointing at a missing blob.
func (s *candidateService) Create(ctx context.Context, name, email, uploadedBy string, up *files.Upload) (*models.Candidate, error) {
	const op = "CandidateService.Create"

	if name == "" || email == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name and email are required", nil)
	}

	if _, err := s.candidates.FindByEmail(ctx, email); err == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "candidate already exists", nil)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to look up candidate", err)
	}

	resume := ""
	if up != nil {
		up.Owner = ownerContext(map[string]string{
			"candidate_name":  name,
			"candidate_email": email,
		}, uploadedBy)
		id, err := s.store.Store(ctx, *up, files.ResumePolicy)
		if err != nil {
			return nil, err
		}
		resume = id
	}

	c := &models.Candidate{Name: name, Email: email, Resume: resume}
	if err := s.candidates.Insert(ctx, c); err != nil {
		if resume != "" {
			if derr := s.store.Delete(ctx, files.ParseRef(resume)); derr != nil {
				s.log.WithError(derr).WithField("file_id", resume).
					Warn("orphaned resume after candidate insert failure")
			}
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create candidate", err)
	}
	return c, nil
}

// UploadResume replaces the candidate's resume. The reference field is only
// updated after the new file is durably stored.
func (s *candidateService) UploadResume(ctx context.Context, id, uploadedBy string, up files.Upload) (*models.Candidate, error) {
	const op = "CandidateService.UploadResume"

	c, err := s.get(ctx, op, id)
	if err != nil {
		return nil, err
	}

	up.Owner = ownerContext(map[string]string{
		"candidate_id":    c.ID.Hex(),
		"candidate_name":  c.Name,
		"candidate_email": c.Email,
	}, uploadedBy)

	res, err := s.store.Replace(ctx, files.ParseRef(c.Resume), up, files.ResumePolicy)
	if err != nil {
		return nil, err
	}
	if !res.OldDeleted {
		s.log.WithField("candidate_id", c.ID.Hex()).Warn("superseded resume left behind")
	}

	if err := s.candidates.SetResume(ctx, c.ID, res.ID); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update resume reference", err)
	}
	c.Resume = res.ID
	return c, nil
}

func (s *candidateService) Update(ctx context.Context, id, name, email string) (*models.Candidate, error) {
	const op = "CandidateService.Update"

	oid, err := parseObjectID(id)
	if err != nil {
		return nil, utils.E(utils.CodeNotFound, op, "candidate not found", err)
	}

	c, err := s.candidates.Update(ctx, oid, name, email)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "candidate not found", err)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update candidate", err)
	}
	return c, nil
}

// Delete removes the candidate. Attachment cleanup is best-effort: a
// failed blob delete is logged and the record mutation proceeds.
func (s *candidateService) Delete(ctx context.Context, id string) error {
	const op = "CandidateService.Delete"

	c, err := s.get(ctx, op, id)
	if err != nil {
		return err
	}

	if ref := files.ParseRef(c.Resume); ref.Kind != files.RefNone {
		if derr := s.store.Delete(ctx, ref); derr != nil {
			s.log.WithError(derr).WithField("candidate_id", c.ID.Hex()).
				Warn("failed to delete resume while removing candidate")
		}
	}

	if err := s.candidates.Delete(ctx, c.ID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete candidate", err)
	}
	return nil
}

func (s *candidateService) Promote(ctx context.Context, id string) (*models.Candidate, *models.Employee, error) {
	const op = "CandidateService.Promote"

	c, err := s.get(ctx, op, id)
	if err != nil {
		return nil, nil, err
	}
	if c.Status == models.CandidateSelected {
		return nil, nil, utils.E(utils.CodeInvalidArgument, op, "candidate is already selected", nil)
	}

	e := &models.Employee{Name: c.Name, Email: c.Email}
	if err := s.employees.Insert(ctx, e); err != nil {
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to create employee", err)
	}

	if err := s.candidates.SetStatus(ctx, c.ID, models.CandidateSelected); err != nil {
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to update candidate status", err)
	}
	c.Status = models.CandidateSelected
	return c, e, nil
}

// Resume opens the candidate's resume for download. External URLs are not a
// valid resume reference and report not-found, matching the legacy scheme.
func (s *candidateService) Resume(ctx context.Context, id string) (*files.Content, error) {
	const op = "CandidateService.Resume"

	c, err := s.get(ctx, op, id)
	if err != nil {
		return nil, err
	}

	ref := files.ParseRef(c.Resume)
	switch ref.Kind {
	case files.RefNone:
		return nil, utils.E(utils.CodeNotFound, op, "no resume found for this candidate", nil)
	case files.RefExternal:
		return nil, utils.E(utils.CodeNotFound, op, "invalid resume reference", nil)
	}
	return s.store.Open(ctx, ref)
}

func (s *candidateService) get(ctx context.Context, op, id string) (*models.Candidate, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, utils.E(utils.CodeNotFound, op, "candidate not found", err)
	}
	c, err := s.candidates.FindByID(ctx, oid)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "candidate not found", err)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load candidate", err)
	}
	return c, nil
}

func ownerContext(fields map[string]string, uploadedBy string) map[string]string {
	if uploadedBy != "" {
		fields["uploaded_by"] = uploadedBy
	}
	return fields
}
