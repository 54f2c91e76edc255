package model

import "time"

// SearchDocument is the flattened, self-contained projection of one visible
// (version, project) pair, ready for bulk submission to the search engine.
// Ids are string-serialized so the document carries no store-level types.
type SearchDocument struct {
	VersionID string `json:"version_id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Summary   string `json:"summary"`

	// Categories carries the legacy dual-use list: project categories,
	// then version loaders, then additional categories, then any
	// mrpack_loaders injection.
	Categories []string `json:"categories"`

	// DisplayCategories is the snapshot taken before additional
	// categories are appended.
	DisplayCategories []string `json:"display_categories"`

	Follows   int64   `json:"follows"`
	Downloads int64   `json:"downloads"`
	IconURL   *string `json:"icon_url"`
	Author    string  `json:"author"`

	DateCreated       time.Time `json:"date_created"`
	CreatedTimestamp  int64     `json:"created_timestamp"`
	DateModified      time.Time `json:"date_modified"`
	ModifiedTimestamp int64     `json:"modified_timestamp"`

	License    string  `json:"license"`
	LicenseURL *string `json:"license_url"`
	OpenSource bool    `json:"open_source"`

	Slug         *string  `json:"slug"`
	ProjectTypes []string `json:"project_types"`

	Gallery         []string `json:"gallery"`
	FeaturedGallery *string  `json:"featured_gallery,omitempty"`

	Color *int64 `json:"color"`

	// LoaderFields maps each version field name to its serialized values,
	// plus the injected client_side/server_side single-element lists.
	LoaderFields map[string][]any `json:"loader_fields"`

	MonetizationStatus string  `json:"monetization_status"`
	TeamID             string  `json:"team_id"`
	OrganizationID     *string `json:"organization_id,omitempty"`
	ThreadID           string  `json:"thread_id"`

	// Versions lists every version id of the project, visible or not.
	Versions []string `json:"versions"`

	DatePublished   time.Time  `json:"date_published"`
	DateQueued      *time.Time `json:"date_queued,omitempty"`
	Status          string     `json:"status"`
	RequestedStatus *string    `json:"requested_status"`

	Games        []string          `json:"games"`
	Links        map[string]string `json:"links"`
	GalleryItems []GalleryItem     `json:"gallery_items"`

	// Loaders is the sorted, duplicate-free union of loaders across every
	// loaded version of the project.
	Loaders []string `json:"loaders"`
}
