// Package model defines the normalized records loaded from the primary
// store and the denormalized search document produced by assembly.
package model

import "time"

// VersionField is a typed, version-scoped metadata field. Values are the
// JSON-decoded representation stored by the primary store (bool, string,
// float64, or []any), not restricted to a fixed set.
type VersionField struct {
	Name  string `json:"field_name"`
	Value any    `json:"value"`
}

// GalleryItem is a single gallery image attached to a project.
type GalleryItem struct {
	ImageURL string `json:"url"`
	Featured bool   `json:"featured"`
}

// ProjectRecord is a fully hydrated project row.
type ProjectRecord struct {
	ID                   int64
	Name                 string
	Summary              string
	Categories           []string
	AdditionalCategories []string
	License              string
	LicenseURL           *string
	IconURL              *string
	Color                *int64
	TeamID               int64
	OrganizationID       *int64
	ThreadID             int64
	Status               string
	RequestedStatus      *string
	Slug                 *string
	Follows              int64
	Downloads            int64
	ApprovedAt           *time.Time
	PublishedAt          time.Time
	UpdatedAt            time.Time
	QueuedAt             *time.Time
	MonetizationStatus   string
	ProjectTypes         []string
	Games                []string
	Links                map[string]string
	Gallery              []GalleryItem

	// VersionIDs lists every version ever associated with the project,
	// regardless of the versions' own visibility.
	VersionIDs []int64
}

// VersionRecord is a fully hydrated version row.
type VersionRecord struct {
	ID           int64
	ProjectID    int64
	Status       string
	Loaders      []string
	ProjectTypes []string
	Fields       []VersionField
}

// VisibleEntity is one (version, project, owner) triple eligible for
// indexing. Owner is an empty string when neither the project team nor the
// organization team resolves an accepted owner.
type VisibleEntity struct {
	VersionID int64
	ProjectID int64
	Owner     string
}
