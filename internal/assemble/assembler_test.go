package assemble

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgelode/indexer/internal/license"
	"github.com/forgelode/indexer/internal/model"
)

func newTestAssembler(t *testing.T) *Assembler {
	t.Helper()
	registry, err := license.NewRegistry()
	require.NoError(t, err)
	return New(registry)
}

func sampleProject() model.ProjectRecord {
	return model.ProjectRecord{
		ID:                   101,
		Name:                 "Iron Chests",
		Summary:              "More chests",
		Categories:           []string{"storage", "utility"},
		AdditionalCategories: []string{"decoration"},
		License:              "MIT OR Apache-2.0",
		TeamID:               7,
		ThreadID:             55,
		Status:               model.ProjectStatusApproved,
		Follows:              12,
		Downloads:            3400,
		PublishedAt:          time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:            time.Date(2024, 2, 10, 8, 30, 0, 0, time.UTC),
		MonetizationStatus:   "monetized",
		ProjectTypes:         []string{"mod"},
		Games:                []string{"minecraft-java"},
		Links:                map[string]string{"source": "https://example.com/src"},
		VersionIDs:           []int64{201, 202},
	}
}

func sampleVersion() model.VersionRecord {
	return model.VersionRecord{
		ID:           201,
		ProjectID:    101,
		Status:       model.VersionStatusListed,
		Loaders:      []string{"fabric"},
		ProjectTypes: []string{"mod"},
		Fields: []model.VersionField{
			{Name: "client_and_server", Value: true},
		},
	}
}

func TestAssemble_OneDocumentPerResolvedPair(t *testing.T) {
	a := newTestAssembler(t)
	p := sampleProject()
	v := sampleVersion()

	visible := []model.VisibleEntity{
		{VersionID: 201, ProjectID: 101, Owner: "alice"},
		{VersionID: 999, ProjectID: 101, Owner: "alice"}, // version missing
		{VersionID: 201, ProjectID: 888, Owner: "alice"}, // project missing
	}

	docs := a.Assemble(visible,
		map[int64]model.ProjectRecord{101: p},
		map[int64]model.VersionRecord{201: v})

	// Unresolved pairs produce no document and no failure.
	require.Len(t, docs, 1)
	assert.Equal(t, "201", docs[0].VersionID)
	assert.Equal(t, "101", docs[0].ProjectID)
	assert.Equal(t, "alice", docs[0].Author)
}

func TestAssemble_CategoryOrderAndDisplaySnapshot(t *testing.T) {
	a := newTestAssembler(t)
	p := sampleProject()
	v := sampleVersion()

	docs := a.Assemble(
		[]model.VisibleEntity{{VersionID: 201, ProjectID: 101}},
		map[int64]model.ProjectRecord{101: p},
		map[int64]model.VersionRecord{201: v})
	require.Len(t, docs, 1)

	// Base categories, then version loaders, then additional categories.
	assert.Equal(t, []string{"storage", "utility", "fabric", "decoration"}, docs[0].Categories)

	// The display snapshot never includes additional categories.
	assert.Equal(t, []string{"storage", "utility", "fabric"}, docs[0].DisplayCategories)
}

func TestAssemble_MrpackLoadersBecomeCategories(t *testing.T) {
	a := newTestAssembler(t)
	p := sampleProject()
	p.Categories = []string{"adventure"}
	p.AdditionalCategories = nil

	v := sampleVersion()
	v.Loaders = []string{"mrpack"}
	v.Fields = []model.VersionField{
		{Name: "mrpack_loaders", Value: "fabric"},
		{Name: "mrpack_loaders", Value: "quilt"},
	}

	docs := a.Assemble(
		[]model.VisibleEntity{{VersionID: 201, ProjectID: 101}},
		map[int64]model.ProjectRecord{101: p},
		map[int64]model.VersionRecord{201: v})
	require.Len(t, docs, 1)

	// Every string value of mrpack_loaders lands in categories and the
	// literal "mrpack" category is displaced.
	assert.Equal(t, []string{"adventure", "fabric", "quilt"}, docs[0].Categories)
	assert.NotContains(t, docs[0].Categories, "mrpack")

	// The display snapshot predates the injection and keeps "mrpack".
	assert.Equal(t, []string{"adventure", "mrpack"}, docs[0].DisplayCategories)

	// The loader field itself is preserved so no information is lost.
	assert.Equal(t, []any{"fabric", "quilt"}, docs[0].LoaderFields["mrpack_loaders"])
}

func TestAssemble_AggregateLoadersUnion(t *testing.T) {
	a := newTestAssembler(t)
	p := sampleProject()
	p.VersionIDs = []int64{201, 202, 203} // 203 is not loaded

	v1 := sampleVersion()
	v1.Loaders = []string{"quilt", "fabric"}
	v2 := model.VersionRecord{
		ID: 202, ProjectID: 101,
		Status:  model.VersionStatusListed,
		Loaders: []string{"fabric", "forge"},
	}

	docs := a.Assemble(
		[]model.VisibleEntity{{VersionID: 201, ProjectID: 101}},
		map[int64]model.ProjectRecord{101: p},
		map[int64]model.VersionRecord{201: v1, 202: v2})
	require.Len(t, docs, 1)

	// Sorted, duplicate-free union over the loaded versions; the absent
	// version id contributes nothing and causes no error.
	assert.Equal(t, []string{"fabric", "forge", "quilt"}, docs[0].Loaders)
}

func TestAssemble_LicenseClassification(t *testing.T) {
	a := newTestAssembler(t)

	tests := []struct {
		expression string
		token      string
		openSource bool
	}{
		{"MIT OR Apache-2.0", "MIT", true},
		{"Proprietary No Redistribution", "Proprietary", false},
		{"LGPL-3.0-or-later", "LGPL-3.0-or-later", true},
		{"", "", false},
	}

	for _, tt := range tests {
		p := sampleProject()
		p.License = tt.expression

		docs := a.Assemble(
			[]model.VisibleEntity{{VersionID: 201, ProjectID: 101}},
			map[int64]model.ProjectRecord{101: p},
			map[int64]model.VersionRecord{201: sampleVersion()})
		require.Len(t, docs, 1)

		assert.Equal(t, tt.token, docs[0].License, "license %q", tt.expression)
		assert.Equal(t, tt.openSource, docs[0].OpenSource, "license %q", tt.expression)
	}
}

func TestAssemble_GallerySplit(t *testing.T) {
	a := newTestAssembler(t)

	t.Run("no featured items", func(t *testing.T) {
		p := sampleProject()
		p.Gallery = []model.GalleryItem{
			{ImageURL: "https://cdn.example.com/a.png"},
			{ImageURL: "https://cdn.example.com/b.png"},
		}

		docs := a.Assemble(
			[]model.VisibleEntity{{VersionID: 201, ProjectID: 101}},
			map[int64]model.ProjectRecord{101: p},
			map[int64]model.VersionRecord{201: sampleVersion()})
		require.Len(t, docs, 1)

		assert.Nil(t, docs[0].FeaturedGallery)
		assert.Equal(t, []string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"}, docs[0].Gallery)
	})

	t.Run("two featured items", func(t *testing.T) {
		p := sampleProject()
		p.Gallery = []model.GalleryItem{
			{ImageURL: "https://cdn.example.com/one.png", Featured: true},
			{ImageURL: "https://cdn.example.com/plain.png"},
			{ImageURL: "https://cdn.example.com/two.png", Featured: true},
		}

		docs := a.Assemble(
			[]model.VisibleEntity{{VersionID: 201, ProjectID: 101}},
			map[int64]model.ProjectRecord{101: p},
			map[int64]model.VersionRecord{201: sampleVersion()})
		require.Len(t, docs, 1)

		// First featured item only; both excluded from the plain list.
		require.NotNil(t, docs[0].FeaturedGallery)
		assert.Equal(t, "https://cdn.example.com/one.png", *docs[0].FeaturedGallery)
		assert.Equal(t, []string{"https://cdn.example.com/plain.png"}, docs[0].Gallery)
	})
}

func TestAssemble_SideFieldsInserted(t *testing.T) {
	a := newTestAssembler(t)

	docs := a.Assemble(
		[]model.VisibleEntity{{VersionID: 201, ProjectID: 101}},
		map[int64]model.ProjectRecord{101: sampleProject()},
		map[int64]model.VersionRecord{201: sampleVersion()})
	require.Len(t, docs, 1)

	// client_and_server = true derives required/required, inserted as
	// single-element lists.
	require.Len(t, docs[0].LoaderFields["client_side"], 1)
	require.Len(t, docs[0].LoaderFields["server_side"], 1)
	assert.EqualValues(t, "required", docs[0].LoaderFields["client_side"][0])
	assert.EqualValues(t, "required", docs[0].LoaderFields["server_side"][0])
}

func TestAssemble_TimestampsAndPassthrough(t *testing.T) {
	a := newTestAssembler(t)
	p := sampleProject()
	approved := time.Date(2023, 5, 2, 9, 0, 0, 0, time.UTC)
	p.ApprovedAt = &approved

	orgID := int64(31)
	p.OrganizationID = &orgID

	docs := a.Assemble(
		[]model.VisibleEntity{{VersionID: 201, ProjectID: 101, Owner: "bob"}},
		map[int64]model.ProjectRecord{101: p},
		map[int64]model.VersionRecord{201: sampleVersion()})
	require.Len(t, docs, 1)
	doc := docs[0]

	// Approval time takes precedence over publication for date_created,
	// with the dual epoch representation.
	assert.Equal(t, approved, doc.DateCreated)
	assert.Equal(t, approved.Unix(), doc.CreatedTimestamp)
	assert.Equal(t, p.UpdatedAt, doc.DateModified)
	assert.Equal(t, p.UpdatedAt.Unix(), doc.ModifiedTimestamp)
	assert.Equal(t, p.PublishedAt, doc.DatePublished)

	assert.Equal(t, "7", doc.TeamID)
	assert.Equal(t, "55", doc.ThreadID)
	require.NotNil(t, doc.OrganizationID)
	assert.Equal(t, "31", *doc.OrganizationID)
	assert.Equal(t, []string{"201", "202"}, doc.Versions)
	assert.Equal(t, p.Links, doc.Links)
	assert.Equal(t, p.Games, doc.Games)
	assert.Equal(t, "bob", doc.Author)
}

func TestAssemble_NoCreatedFallbackWhenUnapproved(t *testing.T) {
	a := newTestAssembler(t)
	p := sampleProject() // ApprovedAt nil

	docs := a.Assemble(
		[]model.VisibleEntity{{VersionID: 201, ProjectID: 101}},
		map[int64]model.ProjectRecord{101: p},
		map[int64]model.VersionRecord{201: sampleVersion()})
	require.Len(t, docs, 1)

	assert.Equal(t, p.PublishedAt, docs[0].DateCreated)
	assert.Equal(t, p.PublishedAt.Unix(), docs[0].CreatedTimestamp)
}

func TestAssemble_EmptyOwnerIsNotAnError(t *testing.T) {
	a := newTestAssembler(t)

	docs := a.Assemble(
		[]model.VisibleEntity{{VersionID: 201, ProjectID: 101, Owner: ""}},
		map[int64]model.ProjectRecord{101: sampleProject()},
		map[int64]model.VersionRecord{201: sampleVersion()})

	require.Len(t, docs, 1)
	assert.Equal(t, "", docs[0].Author)
}
