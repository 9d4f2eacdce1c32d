package masterdata

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// FilteringCondition maps one condition key (EQ, Contains, ...) to a data
// type it applies to.
type FilteringCondition struct {
	ID          string `json:"id"`
	DataType    string `json:"dataType"`
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`
}

func (r *Repository) FilteringConditions() []FilteringCondition {
	return append([]FilteringCondition{}, r.conditions...)
}

// ConditionsForType returns the enabled condition keys for a data type, in
// stored order. The filter generator consumes this as its condition source.
func (r *Repository) ConditionsForType(dataType string) []string {
	var keys []string
	for _, c := range r.conditions {
		if strings.EqualFold(c.DataType, dataType) && enabled(c.Enabled) {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// AddFilteringCondition stores a condition; the (dataType, key) pair must be
// unique.
func (r *Repository) AddFilteringCondition(condition FilteringCondition) (FilteringCondition, error) {
	for _, existing := range r.conditions {
		if strings.EqualFold(existing.DataType, condition.DataType) &&
			strings.EqualFold(existing.Key, condition.Key) && existing.ID != condition.ID {
			return FilteringCondition{}, fmt.Errorf("condition %s/%s already exists", condition.DataType, condition.Key)
		}
	}
	if condition.ID == "" {
		condition.ID = uuid.NewString()
	}
	r.conditions = append(r.conditions, condition)
	return condition, nil
}

func (r *Repository) UpdateFilteringCondition(condition FilteringCondition) error {
	for _, existing := range r.conditions {
		if strings.EqualFold(existing.DataType, condition.DataType) &&
			strings.EqualFold(existing.Key, condition.Key) && existing.ID != condition.ID {
			return fmt.Errorf("condition %s/%s already exists", condition.DataType, condition.Key)
		}
	}
	for i, existing := range r.conditions {
		if existing.ID == condition.ID {
			r.conditions[i] = condition
			return nil
		}
	}
	return fmt.Errorf("filtering condition %q: %w", condition.ID, ErrNotFound)
}

func (r *Repository) DeleteFilteringCondition(id string) error {
	for i, c := range r.conditions {
		if c.ID == id {
			r.conditions = append(r.conditions[:i], r.conditions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("filtering condition %q: %w", id, ErrNotFound)
}

// ToggleFilteringCondition flips a condition's enabled flag and returns the
// new state.
func (r *Repository) ToggleFilteringCondition(id string) (bool, error) {
	for i, c := range r.conditions {
		if c.ID == id {
			flipped := !enabled(c.Enabled)
			r.conditions[i].Enabled = enabledFlag(flipped)
			return flipped, nil
		}
	}
	return false, fmt.Errorf("filtering condition %q: %w", id, ErrNotFound)
}

// ImportFilteringConditions merges a condition list into the store: new
// (dataType, key) pairs are added, existing ones updated in place. It
// returns how many were added and updated.
func (r *Repository) ImportFilteringConditions(conditions []FilteringCondition) (added, updated int) {
	for _, incoming := range conditions {
		replaced := false
		for i, existing := range r.conditions {
			if strings.EqualFold(existing.DataType, incoming.DataType) &&
				strings.EqualFold(existing.Key, incoming.Key) {
				incoming.ID = existing.ID
				r.conditions[i] = incoming
				replaced = true
				updated++
				break
			}
		}
		if !replaced {
			if incoming.ID == "" {
				incoming.ID = uuid.NewString()
			}
			r.conditions = append(r.conditions, incoming)
			added++
		}
	}
	return added, updated
}
