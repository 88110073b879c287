package access

import (
	"errors"
	"fmt"

	"courtflow/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Action string

const (
	ActionView   Action = "view"
	ActionAdd    Action = "add"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Modules that carry a per-user permission row. Administrators bypass the grid
// entirely and never need rows here.
var Modules = []string{
	"cases",
	"sessions",
	"documents",
	"users",
	"permissions",
	"audit",
	"reports",
}

func knownModule(name string) bool {
	for _, m := range Modules {
		if m == name {
			return true
		}
	}
	return false
}

// ValidationError reports a malformed permission grid entry.
type ValidationError struct {
	Module string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("permission entry %q: %s", e.Module, e.Reason)
}

// Flags is a user's effective permission set for one module.
type Flags struct {
	Enabled bool `json:"enabled"`
	View    bool `json:"view"`
	Add     bool `json:"add"`
	Edit    bool `json:"edit"`
	Delete  bool `json:"delete"`
}

// FlagsInput is a partial grid entry: omitted flags default to false, except
// Enabled which defaults to true (mentioning a module turns it on).
type FlagsInput struct {
	Enabled *bool `json:"enabled"`
	View    *bool `json:"view"`
	Add     *bool `json:"add"`
	Edit    *bool `json:"edit"`
	Delete  *bool `json:"delete"`
}

// Evaluator answers per-user, per-module authorization questions.
type Evaluator struct {
	db *gorm.DB
}

func NewEvaluator(db *gorm.DB) *Evaluator {
	return &Evaluator{db: db}
}

// Authorize reports whether the user may perform action on module. Read-only.
//
// Administrators are implicitly authorized for everything; no row lookup is
// performed for them. For everyone else a missing row, a disabled module or an
// unrecognized action all deny (fail closed). An empty action means view.
func (e *Evaluator) Authorize(user models.User, module string, action Action) bool {
	if user.Role == models.RoleAdmin {
		return true
	}
	if module == "" {
		return false
	}
	if action == "" {
		action = ActionView
	}

	var perm models.Permission
	if err := e.db.Where("user_id = ? AND module = ?", user.ID, module).First(&perm).Error; err != nil {
		return false
	}
	if !perm.Enabled {
		return false
	}

	switch action {
	case ActionView:
		return perm.View
	case ActionAdd:
		return perm.Add
	case ActionEdit:
		return perm.Edit
	case ActionDelete:
		return perm.Delete
	}
	return false
}

// ListPermissions returns the user's full grid keyed by module name. Modules
// with no row are simply absent.
func (e *Evaluator) ListPermissions(userID uint) (map[string]Flags, error) {
	var rows []models.Permission
	if err := e.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading permissions for user %d: %w", userID, err)
	}

	grid := make(map[string]Flags, len(rows))
	for _, row := range rows {
		grid[row.Module] = Flags{
			Enabled: row.Enabled,
			View:    row.View,
			Add:     row.Add,
			Edit:    row.Edit,
			Delete:  row.Delete,
		}
	}
	return grid, nil
}

// ReplacePermissions upserts one row per module mentioned in the input.
// Modules not mentioned are left untouched. Each module entry succeeds or
// fails independently; failures are collected and reported together so the
// caller can reconcile.
//
// The write is a single atomic upsert on the (user_id, module) unique key, so
// concurrent calls for the same pair can never produce two rows.
func (e *Evaluator) ReplacePermissions(userID uint, grid map[string]FlagsInput) error {
	var errs []error
	for module, in := range grid {
		if !knownModule(module) {
			errs = append(errs, &ValidationError{Module: module, Reason: "unknown module"})
			continue
		}

		perm := models.Permission{
			UserID:  userID,
			Module:  module,
			Enabled: flagOr(in.Enabled, true),
			View:    flagOr(in.View, false),
			Add:     flagOr(in.Add, false),
			Edit:    flagOr(in.Edit, false),
			Delete:  flagOr(in.Delete, false),
		}

		err := e.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "module"}},
			DoUpdates: clause.AssignmentColumns([]string{"enabled", "view", "add", "edit", "delete", "updated_at"}),
		}).Create(&perm).Error
		if err != nil {
			errs = append(errs, fmt.Errorf("module %s: %w", module, err))
		}
	}
	return errors.Join(errs...)
}

func flagOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
