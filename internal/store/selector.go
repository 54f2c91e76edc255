package store

import (
	"context"
	"fmt"

	ierrors "github.com/forgelode/indexer/internal/errors"
	"github.com/forgelode/indexer/internal/model"
)

// AllVisibleIDs returns every (version, project, owner) triple eligible for
// indexing: the project status is in the searchable set and the version
// status is not in the hidden set.
//
// Owner resolution is two-step, first match wins: the accepted owner of the
// project's team, else the accepted owner of the organization's team, else
// the empty string. The GROUP BY collapses the join fan-out of the two
// ownership paths to one row per (version, project, owner) combination, and
// the descending project-id order keeps runs reproducible.
func (s *Store) AllVisibleIDs(ctx context.Context) ([]model.VisibleEntity, error) {
	searchable := model.SearchableProjectStatuses()
	hidden := model.HiddenVersionStatuses()

	query := fmt.Sprintf(`
		SELECT v.id, p.id, COALESCE(u.username, ou.username, '') AS owner
		FROM versions v
		INNER JOIN projects p ON v.project_id = p.id AND p.status IN (%s)
		LEFT JOIN team_members tm ON tm.team_id = p.team_id AND tm.is_owner = 1 AND tm.accepted = 1
		LEFT JOIN users u ON tm.user_id = u.id
		LEFT JOIN organizations o ON o.id = p.organization_id
		LEFT JOIN team_members otm ON otm.team_id = o.team_id AND otm.is_owner = 1 AND otm.accepted = 1
		LEFT JOIN users ou ON otm.user_id = ou.id
		WHERE v.status NOT IN (%s)
		GROUP BY v.id, p.id, u.username, ou.username
		ORDER BY p.id DESC`,
		placeholders(len(searchable)), placeholders(len(hidden)))

	args := append(stringArgs(searchable), stringArgs(hidden)...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ierrors.StoreError("visibility query failed", err)
	}
	defer rows.Close()

	var visible []model.VisibleEntity
	for rows.Next() {
		var e model.VisibleEntity
		if err := rows.Scan(&e.VersionID, &e.ProjectID, &e.Owner); err != nil {
			return nil, ierrors.StoreError("failed to scan visible triple", err)
		}
		visible = append(visible, e)
	}
	if err := rows.Err(); err != nil {
		return nil, ierrors.StoreError("visibility query failed", err)
	}
	return visible, nil
}
