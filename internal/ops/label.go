package ops

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/kubilitics/kubeplay/internal/events"
	"github.com/kubilitics/kubeplay/internal/parser"
)

// metadataField selects which metadata map label/annotate operates on.
type metadataField string

const (
	fieldLabel      metadataField = "label"
	fieldAnnotation metadataField = "annotation"
)

// ConflictError rejects a change-set entry whose key already exists and
// was not forced with --overwrite.
type ConflictError struct {
	Field metadataField
	Key   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists, use --overwrite to update", e.Field, e.Key)
}

// updateMetadata applies a label or annotation change-set atomically:
// either every entry applies, or none does and the store is untouched.
// Removing an absent key is not an error.
func (s *Session) updateMetadata(cmd parser.Command, field metadataField) (string, error) {
	if len(cmd.ChangeSet) == 0 {
		return "", fmt.Errorf("at least one %s update is required", field)
	}
	old, err := s.deps.Store.Get(cmd.Kind, cmd.Name, cmd.Namespace)
	if err != nil {
		return "", err
	}

	current := old.Labels()
	if field == fieldAnnotation {
		current = old.Annotations()
	}

	// Validate and check conflicts before touching anything, so a failure
	// half-way can never leave a partially applied change-set.
	for key, value := range cmd.ChangeSet {
		if errs := validation.IsQualifiedName(key); len(errs) > 0 {
			return "", fmt.Errorf("invalid %s key %q: %s", field, key, strings.Join(errs, "; "))
		}
		if value == nil {
			continue
		}
		if field == fieldLabel {
			if errs := validation.IsValidLabelValue(*value); len(errs) > 0 {
				return "", fmt.Errorf("invalid label value %q: %s", *value, strings.Join(errs, "; "))
			}
		}
		if _, exists := current[key]; exists && !cmd.Overwrite {
			return "", &ConflictError{Field: field, Key: key}
		}
	}

	merged := make(map[string]string, len(current)+len(cmd.ChangeSet))
	for k, v := range current {
		merged[k] = v
	}
	for key, value := range cmd.ChangeSet {
		if value == nil {
			delete(merged, key)
			continue
		}
		merged[key] = *value
	}

	next := old.DeepCopy()
	verb := events.Labeled
	past := "labeled"
	if field == fieldLabel {
		next.Metadata.Labels = merged
	} else {
		next.Metadata.Annotations = merged
		verb = events.Annotated
		past = "annotated"
	}
	s.emit(verb, next, &old)
	return fmt.Sprintf("%s/%s %s", cmd.Kind.Lower(), cmd.Name, past), nil
}
