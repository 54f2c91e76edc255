// Package assemble merges loaded project and version records into
// denormalized search documents.
package assemble

import (
	"encoding/json"
	"log/slog"
	"slices"
	"sort"
	"strconv"

	"github.com/forgelode/indexer/internal/license"
	"github.com/forgelode/indexer/internal/model"
	"github.com/forgelode/indexer/internal/sides"
)

// mrpackLoadersField is the loader field whose string values double as
// search categories, displacing the literal "mrpack" category. Modpack
// loaders were the version loader in v2, and in v2 search the loader is a
// category; treating the field values as categories keeps old facets
// working without losing the field itself.
const mrpackLoadersField = "mrpack_loaders"

// Assembler builds one search document per visible (version, project) pair.
type Assembler struct {
	licenses *license.Registry
}

// New creates an Assembler using the given license registry.
func New(licenses *license.Registry) *Assembler {
	return &Assembler{licenses: licenses}
}

// Assemble produces one document per visible triple whose project and
// version both resolve. Triples missing either side are skipped, never an
// error: a record can legitimately disappear between selection and loading.
// Output order follows the input triples.
func (a *Assembler) Assemble(
	visible []model.VisibleEntity,
	projects map[int64]model.ProjectRecord,
	versions map[int64]model.VersionRecord,
) []model.SearchDocument {
	docs := make([]model.SearchDocument, 0, len(visible))
	skipped := 0

	for _, entity := range visible {
		p, ok := projects[entity.ProjectID]
		if !ok {
			skipped++
			continue
		}
		v, ok := versions[entity.VersionID]
		if !ok {
			skipped++
			continue
		}
		docs = append(docs, a.assembleOne(entity, p, v, versions))
	}

	if skipped > 0 {
		slog.Debug("skipped unresolved visible pairs", slog.Int("count", skipped))
	}
	return docs
}

func (a *Assembler) assembleOne(
	entity model.VisibleEntity,
	p model.ProjectRecord,
	v model.VersionRecord,
	versions map[int64]model.VersionRecord,
) model.SearchDocument {
	// Version loaders double as search categories; additional categories
	// join after the display snapshot is taken.
	categories := make([]string, 0, len(p.Categories)+len(v.Loaders)+len(p.AdditionalCategories))
	categories = append(categories, p.Categories...)
	categories = append(categories, v.Loaders...)

	displayCategories := slices.Clone(categories)

	categories = append(categories, p.AdditionalCategories...)

	loaderFields, rawFields := ReconcileFields(v.Fields)

	licenseToken := license.Token(p.License)
	openSource := a.licenses.OSIApproved(licenseToken)

	aggregateLoaders := unionLoaders(p.VersionIDs, versions)

	if mrpack, ok := loaderFields[mrpackLoadersField]; ok {
		for _, value := range mrpack {
			if s, isString := value.(string); isString {
				categories = append(categories, s)
			}
		}
		categories = slices.DeleteFunc(categories, func(c string) bool {
			return c == "mrpack"
		})
	}

	clientSide, serverSide := sides.Map(rawFields, sides.LegacyProjectType(v.ProjectTypes))
	insertDerivedField(loaderFields, "client_side", clientSide)
	insertDerivedField(loaderFields, "server_side", serverSide)

	gallery := make([]string, 0, len(p.Gallery))
	var featuredGallery *string
	for _, item := range p.Gallery {
		if item.Featured {
			if featuredGallery == nil {
				url := item.ImageURL
				featuredGallery = &url
			}
			continue
		}
		gallery = append(gallery, item.ImageURL)
	}

	created := p.PublishedAt
	if p.ApprovedAt != nil {
		created = *p.ApprovedAt
	}

	versionIDs := make([]string, len(p.VersionIDs))
	for i, id := range p.VersionIDs {
		versionIDs[i] = formatID(id)
	}

	var organizationID *string
	if p.OrganizationID != nil {
		id := formatID(*p.OrganizationID)
		organizationID = &id
	}

	return model.SearchDocument{
		VersionID:          formatID(v.ID),
		ProjectID:          formatID(p.ID),
		Name:               p.Name,
		Summary:            p.Summary,
		Categories:         categories,
		DisplayCategories:  displayCategories,
		Follows:            p.Follows,
		Downloads:          p.Downloads,
		IconURL:            p.IconURL,
		Author:             entity.Owner,
		DateCreated:        created,
		CreatedTimestamp:   created.Unix(),
		DateModified:       p.UpdatedAt,
		ModifiedTimestamp:  p.UpdatedAt.Unix(),
		License:            licenseToken,
		LicenseURL:         p.LicenseURL,
		OpenSource:         openSource,
		Slug:               p.Slug,
		ProjectTypes:       p.ProjectTypes,
		Gallery:            gallery,
		FeaturedGallery:    featuredGallery,
		Color:              p.Color,
		LoaderFields:       loaderFields,
		MonetizationStatus: p.MonetizationStatus,
		TeamID:             formatID(p.TeamID),
		OrganizationID:     organizationID,
		ThreadID:           formatID(p.ThreadID),
		Versions:           versionIDs,
		DatePublished:      p.PublishedAt,
		DateQueued:         p.QueuedAt,
		Status:             p.Status,
		RequestedStatus:    p.RequestedStatus,
		Games:              p.Games,
		Links:              p.Links,
		GalleryItems:       p.Gallery,
		Loaders:            aggregateLoaders,
	}
}

// unionLoaders folds loaders over every version id of the project present in
// the loaded mapping. Absent versions contribute nothing.
func unionLoaders(versionIDs []int64, versions map[int64]model.VersionRecord) []string {
	var loaders []string
	for _, id := range versionIDs {
		if v, ok := versions[id]; ok {
			loaders = append(loaders, v.Loaders...)
		}
	}
	sort.Strings(loaders)
	return slices.Compact(loaders)
}

// insertDerivedField adds a derived value as a single-element list. A value
// that fails to serialize is omitted alone; the document is still produced.
func insertDerivedField(loaderFields map[string][]any, name string, value any) {
	if _, err := json.Marshal(value); err != nil {
		slog.Warn("dropping unserializable derived field",
			slog.String("field", name),
			slog.String("error", err.Error()))
		return
	}
	loaderFields[name] = []any{value}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
