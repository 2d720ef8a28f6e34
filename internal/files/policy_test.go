package files

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nimbushr/hrms/internal/utils"
)

func TestResumePolicy(t *testing.T) {
	assert.NoError(t, ResumePolicy.Validate("application/pdf", 2<<20))

	err := ResumePolicy.Validate("image/png", 1024)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	// word documents are fine for leave documents but not resumes
	err = ResumePolicy.Validate("application/msword", 1024)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	err = ResumePolicy.Validate("application/pdf", 5<<20+1)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	err = ResumePolicy.Validate("application/pdf", 0)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestLeaveDocumentPolicy(t *testing.T) {
	for _, ct := range []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	} {
		assert.NoError(t, LeaveDocumentPolicy.Validate(ct, 10<<20))
	}

	err := LeaveDocumentPolicy.Validate("text/plain", 1024)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	err = LeaveDocumentPolicy.Validate("application/pdf", 10<<20+1)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}
