package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
	"github.com/jobtrackd/jobtrackd/internal/core/ports"
)

type ChecklistItemInput struct {
	Task     string
	Category string
	Position int
	Priority domain.Priority
	DueOn    *time.Time
}

// ChecklistUseCase manages per-application checklists and the template
// bundles used to seed them. Built-in templates are served alongside the
// owner's stored ones.
type ChecklistUseCase struct {
	apps      ports.ApplicationRepository
	checklist ports.ChecklistRepository
	builtins  []domain.ChecklistTemplate
}

func NewChecklistUseCase(
	apps ports.ApplicationRepository,
	checklist ports.ChecklistRepository,
	builtins []domain.ChecklistTemplate,
) *ChecklistUseCase {
	if builtins == nil {
		builtins = DefaultChecklistTemplates()
	}
	return &ChecklistUseCase{
		apps:      apps,
		checklist: checklist,
		builtins:  builtins,
	}
}

func (uc *ChecklistUseCase) ListTemplates(ctx context.Context, ownerID string) ([]domain.ChecklistTemplate, error) {
	stored, err := uc.checklist.ListTemplates(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	templates := make([]domain.ChecklistTemplate, 0, len(uc.builtins)+len(stored))
	templates = append(templates, uc.builtins...)
	templates = append(templates, stored...)
	return templates, nil
}

// SeedFromTemplate copies a template's item blueprints into the application's
// checklist.
func (uc *ChecklistUseCase) SeedFromTemplate(ctx context.Context, ownerID, applicationID, templateID string) ([]domain.ChecklistItem, error) {
	if _, err := uc.apps.GetByID(ctx, ownerID, applicationID); err != nil {
		return nil, err
	}

	template, err := uc.findTemplate(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]domain.ChecklistItem, 0, len(template.Items))
	for _, blueprint := range template.Items {
		items = append(items, domain.ChecklistItem{
			ID:            uuid.NewString(),
			ApplicationID: applicationID,
			Task:          blueprint.Task,
			Category:      blueprint.Category,
			Position:      blueprint.Position,
			Priority:      blueprint.Priority,
			CreatedAt:     now,
		})
	}
	if err := uc.checklist.CreateItems(ctx, items); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "seed checklist", err)
	}
	return items, nil
}

func (uc *ChecklistUseCase) AddItem(ctx context.Context, ownerID, applicationID string, input ChecklistItemInput) (*domain.ChecklistItem, error) {
	if strings.TrimSpace(input.Task) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "add checklist item", errMissingField("task"))
	}
	if !input.Priority.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "add checklist item", errUnknownValue("priority", string(input.Priority)))
	}
	if _, err := uc.apps.GetByID(ctx, ownerID, applicationID); err != nil {
		return nil, err
	}

	item := domain.ChecklistItem{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		Task:          input.Task,
		Category:      input.Category,
		Position:      input.Position,
		Priority:      input.Priority,
		DueOn:         input.DueOn,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.checklist.CreateItems(ctx, []domain.ChecklistItem{item}); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "add checklist item", err)
	}
	return &item, nil
}

func (uc *ChecklistUseCase) ListForApplication(ctx context.Context, ownerID, applicationID string) ([]domain.ChecklistItem, error) {
	if _, err := uc.apps.GetByID(ctx, ownerID, applicationID); err != nil {
		return nil, err
	}
	return uc.checklist.ListForApplication(ctx, applicationID)
}

func (uc *ChecklistUseCase) ToggleItem(ctx context.Context, ownerID, id string) (*domain.ChecklistItem, error) {
	return uc.checklist.ToggleItem(ctx, ownerID, id)
}

func (uc *ChecklistUseCase) DeleteItem(ctx context.Context, ownerID, id string) error {
	return uc.checklist.DeleteItem(ctx, ownerID, id)
}

func (uc *ChecklistUseCase) AddTemplate(ctx context.Context, ownerID string, template domain.ChecklistTemplate) (*domain.ChecklistTemplate, error) {
	if strings.TrimSpace(template.Name) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "add template", errMissingField("name"))
	}
	template.ID = uuid.NewString()
	template.OwnerID = ownerID
	template.IsDefault = false
	if err := uc.checklist.CreateTemplate(ctx, &template); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "add template", err)
	}
	return &template, nil
}

func (uc *ChecklistUseCase) findTemplate(ctx context.Context, ownerID, templateID string) (*domain.ChecklistTemplate, error) {
	for _, builtin := range uc.builtins {
		if builtin.ID == templateID {
			return &builtin, nil
		}
	}
	stored, err := uc.checklist.ListTemplates(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, template := range stored {
		if template.ID == templateID {
			return &template, nil
		}
	}
	return nil, domain.WrapError(domain.ErrNotFound, "find template", errUnknownValue("template", templateID))
}
