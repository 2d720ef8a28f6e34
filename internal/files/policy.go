package files

import (
	"fmt"

	"github.com/nimbushr/hrms/internal/utils"
)

// Policy is the per-operation upload constraint set, enforced before any
// byte reaches the blob store.
type Policy struct {
	Name         string
	MaxBytes     int64
	AllowedTypes []string
}

var (
	ResumePolicy = Policy{
		Name:         "resume",
		MaxBytes:     5 << 20,
		AllowedTypes: []string{"application/pdf"},
	}

	LeaveDocumentPolicy = Policy{
		Name:     "leave document",
		MaxBytes: 10 << 20,
		AllowedTypes: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
	}
)

func (p Policy) Validate(contentType string, size int64) error {
	const op = "files.Policy.Validate"

	allowed := false
	for _, t := range p.AllowedTypes {
		if t == contentType {
			allowed = true
			break
		}
	}
	if !allowed {
		return utils.E(utils.CodeInvalidArgument, op,
			fmt.Sprintf("content type %q is not allowed for %s uploads", contentType, p.Name), nil)
	}
	if size <= 0 || size > p.MaxBytes {
		return utils.E(utils.CodeInvalidArgument, op,
			fmt.Sprintf("%s must be between 1 byte and %d MB", p.Name, p.MaxBytes>>20), nil)
	}
	return nil
}
