package assemble

import "github.com/forgelode/indexer/internal/model"

// ReconcileFields flattens a version's typed field list into two mappings:
//
//   - values: field name to the list of serialized values for the search
//     document. Duplicate field names append to the same list; multiple
//     typed fields may legitimately map to one output key.
//   - raw: field name to the original typed value, used for the legacy
//     side-type derivation. Duplicates overwrite, last wins.
func ReconcileFields(fields []model.VersionField) (values map[string][]any, raw map[string]any) {
	values = make(map[string][]any, len(fields))
	raw = make(map[string]any, len(fields))

	for _, f := range fields {
		values[f.Name] = append(values[f.Name], f.Value)
		raw[f.Name] = f.Value
	}
	return values, raw
}
