// Package classifier abstracts the external text-understanding service that
// maps free-text queries to routing labels, specialties and names.
package classifier

import (
	"context"
	"errors"
	"strings"
)

// Label is the routing label produced for a booking query.
type Label string

const (
	// LabelProfessionalExists means the query names a known professional.
	LabelProfessionalExists Label = "professional_exists"
	// LabelProfessionalNotExists is the safe default: no known name found.
	LabelProfessionalNotExists Label = "professional_not_exists"
)

// ErrUnavailable is returned once the retry budget is exhausted. Callers are
// expected to degrade to LabelProfessionalNotExists rather than abort.
var ErrUnavailable = errors.New("classifier: service unavailable")

// NoSpecialty is returned by ExtractSpecialty/ExtractProfessionalName when
// nothing in the query matched.
const NoSpecialty = "NONE"

// Classifier answers the three narrow questions the workflow asks about a
// raw user query. Implementations must return only the enumerated labels;
// the workflow treats anything else as LabelProfessionalNotExists.
type Classifier interface {
	ClassifyQuery(ctx context.Context, query string, knownNames []string) (Label, error)
	ExtractSpecialty(ctx context.Context, query string, knownSpecialties []string) (string, error)
	ExtractProfessionalName(ctx context.Context, query string, knownNames []string) (string, error)
}

// NormalizeLabel maps arbitrary classifier output onto the label enum,
// falling back to the safe default for anything unexpected.
func NormalizeLabel(raw string) Label {
	cleaned := trimLabel(raw)
	switch {
	// Checked first: "professional_exists" is a substring of it.
	case strings.Contains(cleaned, string(LabelProfessionalNotExists)):
		return LabelProfessionalNotExists
	case strings.Contains(cleaned, string(LabelProfessionalExists)):
		return LabelProfessionalExists
	default:
		return LabelProfessionalNotExists
	}
}

func trimLabel(raw string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(raw)), "'\"`.")
}
