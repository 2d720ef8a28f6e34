package files

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RefKind discriminates the ways an owning record can point at a file.
type RefKind uint8

const (
	// RefNone means no file is on record.
	RefNone RefKind = iota
	// RefID points into the blob store by attachment id.
	RefID
	// RefLegacyPath is a filesystem path from the pre-blob-store scheme,
	// e.g. "/uploads/resumes/old.pdf".
	RefLegacyPath
	// RefExternal is an http(s) URL hosted elsewhere.
	RefExternal
)

// Ref is the decoded form of a stored reference string. Owning records keep
// a single string field for backward compatibility; ParseRef is the one
// place that branching on its shape happens.
type Ref struct {
	Kind RefKind
	ID   primitive.ObjectID // RefID
	Path string             // RefLegacyPath
	URL  string             // RefExternal
}

func ParseRef(s string) Ref {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{Kind: RefNone}
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return Ref{Kind: RefExternal, URL: s}
	}
	if id, err := primitive.ObjectIDFromHex(s); err == nil {
		return Ref{Kind: RefID, ID: id}
	}
	return Ref{Kind: RefLegacyPath, Path: s}
}

// String re-encodes the reference to its stored form.
func (r Ref) String() string {
	switch r.Kind {
	case RefID:
		return r.ID.Hex()
	case RefLegacyPath:
		return r.Path
	case RefExternal:
		return r.URL
	default:
		return ""
	}
}
