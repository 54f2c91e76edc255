package model

// Project statuses.
const (
	ProjectStatusApproved   = "approved"
	ProjectStatusArchived   = "archived"
	ProjectStatusRejected   = "rejected"
	ProjectStatusDraft      = "draft"
	ProjectStatusUnlisted   = "unlisted"
	ProjectStatusProcessing = "processing"
	ProjectStatusWithheld   = "withheld"
	ProjectStatusScheduled  = "scheduled"
	ProjectStatusPrivate    = "private"
	ProjectStatusUnknown    = "unknown"
)

// Version statuses.
const (
	VersionStatusListed    = "listed"
	VersionStatusArchived  = "archived"
	VersionStatusDraft     = "draft"
	VersionStatusUnlisted  = "unlisted"
	VersionStatusScheduled = "scheduled"
	VersionStatusUnknown   = "unknown"
)

// SearchableProjectStatuses is the policy set of project statuses eligible
// for indexing.
func SearchableProjectStatuses() []string {
	return []string{ProjectStatusApproved, ProjectStatusArchived}
}

// HiddenVersionStatuses is the policy set of version statuses excluded from
// indexing.
func HiddenVersionStatuses() []string {
	return []string{
		VersionStatusDraft,
		VersionStatusUnlisted,
		VersionStatusScheduled,
		VersionStatusUnknown,
	}
}

// ProjectSearchable reports whether a project status is in the searchable
// set.
func ProjectSearchable(status string) bool {
	for _, s := range SearchableProjectStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// VersionHidden reports whether a version status is in the hidden set.
func VersionHidden(status string) bool {
	for _, s := range HiddenVersionStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
