package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	ierrors "github.com/forgelode/indexer/internal/errors"
	"github.com/forgelode/indexer/internal/model"
)

// timeLayout is the column representation of timestamps.
const timeLayout = time.RFC3339Nano

// ProjectsByIDs batch-fetches hydrated project records. Ids that do not
// resolve are absent from the result; that is not an error.
func (s *Store) ProjectsByIDs(ctx context.Context, ids []int64) (map[int64]model.ProjectRecord, error) {
	out := make(map[int64]model.ProjectRecord, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query := fmt.Sprintf(`
		SELECT id, name, summary, categories, additional_categories,
			license, license_url, icon_url, color, team_id,
			organization_id, thread_id, status, requested_status, slug,
			follows, downloads, approved_at, published_at, updated_at,
			queued_at, monetization_status, project_types, games, links,
			gallery
		FROM projects WHERE id IN (%s)`, placeholders(len(ids)))

	rows, err := s.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return nil, ierrors.StoreError("project batch query failed", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, ierrors.StoreError("project batch query failed", err)
	}

	if err := s.attachVersionIDs(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachVersionIDs hydrates each project's full version-id list, covering
// every version ever associated with the project regardless of the
// versions' own visibility.
func (s *Store) attachVersionIDs(ctx context.Context, projects map[int64]model.ProjectRecord) error {
	if len(projects) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(projects))
	for id := range projects {
		ids = append(ids, id)
	}

	query := fmt.Sprintf(
		`SELECT id, project_id FROM versions WHERE project_id IN (%s) ORDER BY id`,
		placeholders(len(ids)))

	rows, err := s.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return ierrors.StoreError("version-id query failed", err)
	}
	defer rows.Close()

	for rows.Next() {
		var versionID, projectID int64
		if err := rows.Scan(&versionID, &projectID); err != nil {
			return ierrors.StoreError("failed to scan version id", err)
		}
		p := projects[projectID]
		p.VersionIDs = append(p.VersionIDs, versionID)
		projects[projectID] = p
	}
	if err := rows.Err(); err != nil {
		return ierrors.StoreError("version-id query failed", err)
	}
	return nil
}

// VersionsByIDs batch-fetches hydrated version records. Ids that do not
// resolve are absent from the result; that is not an error.
func (s *Store) VersionsByIDs(ctx context.Context, ids []int64) (map[int64]model.VersionRecord, error) {
	out := make(map[int64]model.VersionRecord, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query := fmt.Sprintf(`
		SELECT id, project_id, status, loaders, project_types, version_fields
		FROM versions WHERE id IN (%s)`, placeholders(len(ids)))

	rows, err := s.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return nil, ierrors.StoreError("version batch query failed", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			v                             model.VersionRecord
			loaders, projectTypes, fields string
		)
		if err := rows.Scan(&v.ID, &v.ProjectID, &v.Status, &loaders, &projectTypes, &fields); err != nil {
			return nil, ierrors.StoreError("failed to scan version", err)
		}
		if err := decodeJSON("loaders", loaders, &v.Loaders); err != nil {
			return nil, err
		}
		if err := decodeJSON("project_types", projectTypes, &v.ProjectTypes); err != nil {
			return nil, err
		}
		if err := decodeJSON("version_fields", fields, &v.Fields); err != nil {
			return nil, err
		}
		out[v.ID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, ierrors.StoreError("version batch query failed", err)
	}
	return out, nil
}

func scanProject(rows *sql.Rows) (model.ProjectRecord, error) {
	var (
		p model.ProjectRecord

		categories, additionalCategories string
		projectTypes, games              string
		links, gallery                   string

		licenseURL, iconURL, requestedStatus, slug sql.NullString
		color, organizationID                      sql.NullInt64
		approvedAt, queuedAt                       sql.NullString
		publishedAt, updatedAt                     string
	)

	err := rows.Scan(
		&p.ID, &p.Name, &p.Summary, &categories, &additionalCategories,
		&p.License, &licenseURL, &iconURL, &color, &p.TeamID,
		&organizationID, &p.ThreadID, &p.Status, &requestedStatus, &slug,
		&p.Follows, &p.Downloads, &approvedAt, &publishedAt, &updatedAt,
		&queuedAt, &p.MonetizationStatus, &projectTypes, &games, &links,
		&gallery,
	)
	if err != nil {
		return p, ierrors.StoreError("failed to scan project", err)
	}

	jsonColumns := []struct {
		name string
		raw  string
		dest any
	}{
		{"categories", categories, &p.Categories},
		{"additional_categories", additionalCategories, &p.AdditionalCategories},
		{"project_types", projectTypes, &p.ProjectTypes},
		{"games", games, &p.Games},
		{"links", links, &p.Links},
		{"gallery", gallery, &p.Gallery},
	}
	for _, col := range jsonColumns {
		if err := decodeJSON(col.name, col.raw, col.dest); err != nil {
			return p, err
		}
	}

	p.LicenseURL = nullString(licenseURL)
	p.IconURL = nullString(iconURL)
	p.RequestedStatus = nullString(requestedStatus)
	p.Slug = nullString(slug)
	p.Color = nullInt64(color)
	p.OrganizationID = nullInt64(organizationID)

	if p.PublishedAt, err = parseTime(publishedAt); err != nil {
		return p, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return p, err
	}
	if p.ApprovedAt, err = parseNullTime(approvedAt); err != nil {
		return p, err
	}
	if p.QueuedAt, err = parseNullTime(queuedAt); err != nil {
		return p, err
	}
	return p, nil
}

// decodeJSON unmarshals a JSON column. Empty columns are left as zero
// values.
func decodeJSON(name, raw string, dest any) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return ierrors.StoreError(fmt.Sprintf("corrupt %s column", name), err)
	}
	return nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}, ierrors.StoreError("corrupt timestamp column", err)
	}
	return t, nil
}

func parseNullTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid {
		return nil, nil
	}
	t, err := parseTime(v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
