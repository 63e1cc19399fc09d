package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/sergioanunez/phase/internal/domain"
)

// resolveHomeID accepts a full UUID, a UUID prefix, or an exact home name
// (case-insensitive) within the current tenant.
func resolveHomeID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("home ID is required")
	}

	homes, err := app.Homes.List(ctx, app.TenantID)
	if err != nil {
		return "", err
	}

	for _, h := range homes {
		if h.ID == input || strings.EqualFold(h.Name, input) {
			return h.ID, nil
		}
	}

	var matches []string
	for _, h := range homes {
		if strings.HasPrefix(h.ID, input) {
			matches = append(matches, h.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("home not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("home ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTask finds one of a home's tasks by UUID, UUID prefix, or exact
// frozen name (case-insensitive).
func resolveTask(ctx context.Context, app *App, homeRef, taskRef string) (*domain.HomeTask, error) {
	homeID, err := resolveHomeID(ctx, app, homeRef)
	if err != nil {
		return nil, err
	}
	tasks, err := app.Tasks.ListByHome(ctx, homeID)
	if err != nil {
		return nil, err
	}

	for _, t := range tasks {
		if t.ID == taskRef || strings.EqualFold(t.NameSnapshot, taskRef) {
			return t, nil
		}
	}

	var matches []*domain.HomeTask
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, taskRef) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("task not found on home: %q", taskRef)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("task reference %q is ambiguous (%d matches)", taskRef, len(matches))
	}
}

// resolveTemplateItemID matches template items the same way, within the
// current tenant's catalog.
func resolveTemplateItemID(ctx context.Context, app *App, input string) (string, error) {
	items, err := app.Templates.ListItems(ctx, app.TenantID)
	if err != nil {
		return "", err
	}

	for _, item := range items {
		if item.ID == input || strings.EqualFold(item.Name, input) {
			return item.ID, nil
		}
	}

	var matches []string
	for _, item := range items {
		if strings.HasPrefix(item.ID, input) {
			matches = append(matches, item.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("template item not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("template item reference %q is ambiguous (%d matches)", input, len(matches))
	}
}
