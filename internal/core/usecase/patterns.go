package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
	"github.com/jobtrackd/jobtrackd/internal/core/ports"
)

type PatternInput struct {
	Name      string
	Type      domain.PatternType
	Content   string
	Tags      []string
	IsDefault bool
}

// PatternUseCase manages the owner's reusable text templates.
type PatternUseCase struct {
	patterns ports.PatternRepository
}

func NewPatternUseCase(patterns ports.PatternRepository) *PatternUseCase {
	return &PatternUseCase{patterns: patterns}
}

func (uc *PatternUseCase) Add(ctx context.Context, ownerID string, input PatternInput) (*domain.Pattern, error) {
	if err := validatePatternInput(input); err != nil {
		return nil, err
	}

	pattern := &domain.Pattern{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(input.Name),
		Type:      input.Type,
		Content:   input.Content,
		Tags:      input.Tags,
		IsDefault: input.IsDefault,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.patterns.Create(ctx, pattern); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "add pattern", err)
	}
	return pattern, nil
}

// List returns the owner's patterns, optionally narrowed to one type.
func (uc *PatternUseCase) List(ctx context.Context, ownerID string, patternType domain.PatternType) ([]domain.Pattern, error) {
	if patternType != "" && !patternType.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "list patterns", errUnknownValue("type", string(patternType)))
	}

	patterns, err := uc.patterns.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if patternType == "" {
		return patterns, nil
	}
	filtered := make([]domain.Pattern, 0, len(patterns))
	for _, pattern := range patterns {
		if pattern.Type == patternType {
			filtered = append(filtered, pattern)
		}
	}
	return filtered, nil
}

func (uc *PatternUseCase) Get(ctx context.Context, ownerID, id string) (*domain.Pattern, error) {
	return uc.patterns.GetByID(ctx, ownerID, id)
}

func (uc *PatternUseCase) Update(ctx context.Context, ownerID, id string, input PatternInput) (*domain.Pattern, error) {
	if err := validatePatternInput(input); err != nil {
		return nil, err
	}

	current, err := uc.patterns.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated := *current
	updated.Name = strings.TrimSpace(input.Name)
	updated.Type = input.Type
	updated.Content = input.Content
	updated.Tags = input.Tags
	updated.IsDefault = input.IsDefault
	updated.UpdatedAt = &now

	if err := uc.patterns.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (uc *PatternUseCase) Delete(ctx context.Context, ownerID, id string) error {
	return uc.patterns.Delete(ctx, ownerID, id)
}

// Duplicate copies a pattern under a "(Copy)" name; the copy never inherits
// the default flag.
func (uc *PatternUseCase) Duplicate(ctx context.Context, ownerID, id string) (*domain.Pattern, error) {
	source, err := uc.patterns.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	copied := &domain.Pattern{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      source.Name + " (Copy)",
		Type:      source.Type,
		Content:   source.Content,
		Tags:      append([]string(nil), source.Tags...),
		IsDefault: false,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.patterns.Create(ctx, copied); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "duplicate pattern", err)
	}
	return copied, nil
}

// SetDefault makes the pattern the sole default of its type for the owner.
func (uc *PatternUseCase) SetDefault(ctx context.Context, ownerID, id string) (*domain.Pattern, error) {
	return uc.patterns.SetDefault(ctx, ownerID, id)
}

func validatePatternInput(input PatternInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "validate pattern", errMissingField("name"))
	}
	if !input.Type.Valid() {
		return domain.WrapError(domain.ErrInvalidInput, "validate pattern", errUnknownValue("type", string(input.Type)))
	}
	if strings.TrimSpace(input.Content) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "validate pattern", errMissingField("content"))
	}
	return nil
}
