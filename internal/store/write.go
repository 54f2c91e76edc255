package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	ierrors "github.com/forgelode/indexer/internal/errors"
	"github.com/forgelode/indexer/internal/model"
)

// Write helpers used to seed the store. The indexing pipeline itself never
// writes; population is owned by the platform's API.

// InsertUser inserts a user row.
func (s *Store) InsertUser(ctx context.Context, id int64, username string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username) VALUES (?, ?)`, id, username)
	return execErr(err)
}

// InsertTeam inserts a team row.
func (s *Store) InsertTeam(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO teams (id) VALUES (?)`, id)
	return execErr(err)
}

// InsertTeamMember inserts a team membership row.
func (s *Store) InsertTeamMember(ctx context.Context, teamID, userID int64, isOwner, accepted bool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO team_members (team_id, user_id, is_owner, accepted) VALUES (?, ?, ?, ?)`,
		teamID, userID, isOwner, accepted)
	return execErr(err)
}

// InsertOrganization inserts an organization row.
func (s *Store) InsertOrganization(ctx context.Context, id, teamID int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO organizations (id, team_id) VALUES (?, ?)`, id, teamID)
	return execErr(err)
}

// InsertProject inserts a project row. The VersionIDs field is derived from
// the versions table and is ignored here.
func (s *Store) InsertProject(ctx context.Context, p model.ProjectRecord) error {
	categories, err := marshalColumn(p.Categories)
	if err != nil {
		return err
	}
	additionalCategories, err := marshalColumn(p.AdditionalCategories)
	if err != nil {
		return err
	}
	projectTypes, err := marshalColumn(p.ProjectTypes)
	if err != nil {
		return err
	}
	games, err := marshalColumn(p.Games)
	if err != nil {
		return err
	}
	links, err := marshalColumn(p.Links)
	if err != nil {
		return err
	}
	gallery, err := marshalColumn(p.Gallery)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (
			id, name, summary, categories, additional_categories,
			license, license_url, icon_url, color, team_id,
			organization_id, thread_id, status, requested_status, slug,
			follows, downloads, approved_at, published_at, updated_at,
			queued_at, monetization_status, project_types, games, links,
			gallery
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Summary, categories, additionalCategories,
		p.License, p.LicenseURL, p.IconURL, p.Color, p.TeamID,
		p.OrganizationID, p.ThreadID, p.Status, p.RequestedStatus, p.Slug,
		p.Follows, p.Downloads, formatNullTime(p.ApprovedAt),
		p.PublishedAt.Format(timeLayout), p.UpdatedAt.Format(timeLayout),
		formatNullTime(p.QueuedAt), p.MonetizationStatus, projectTypes,
		games, links, gallery)
	return execErr(err)
}

// InsertVersion inserts a version row.
func (s *Store) InsertVersion(ctx context.Context, v model.VersionRecord) error {
	loaders, err := marshalColumn(v.Loaders)
	if err != nil {
		return err
	}
	projectTypes, err := marshalColumn(v.ProjectTypes)
	if err != nil {
		return err
	}
	fields, err := marshalColumn(v.Fields)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO versions (id, project_id, status, loaders, project_types, version_fields)
		VALUES (?, ?, ?, ?, ?, ?)`,
		v.ID, v.ProjectID, v.Status, loaders, projectTypes, fields)
	return execErr(err)
}

// DeleteVersion removes a version row, used to exercise partial resolution.
func (s *Store) DeleteVersion(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM versions WHERE id = ?`, id)
	return execErr(err)
}

// execErr wraps a write failure, avoiding a typed-nil error on success.
func execErr(err error) error {
	if err == nil {
		return nil
	}
	return ierrors.Wrap(ierrors.ErrCodeStoreQuery, err)
}

func marshalColumn(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", ierrors.Wrap(ierrors.ErrCodeSerialization, err)
	}
	return string(data), nil
}

func formatNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(timeLayout), Valid: true}
}
