// Package sides derives the legacy client_side/server_side support flags
// from a version's raw loader fields.
//
// The v2 API exposed client_side and server_side as first-class fields; v3
// replaced them with boolean loader fields (client_only, server_only,
// client_and_server, singleplayer). Search documents still carry the legacy
// pair so older consumers can facet on them.
package sides

// Side is a legacy environment support flag.
type Side string

const (
	Required    Side = "required"
	Optional    Side = "optional"
	Unsupported Side = "unsupported"
	Unknown     Side = "unknown"
)

// Loader field names consulted for the derivation.
const (
	fieldClientOnly      = "client_only"
	fieldServerOnly      = "server_only"
	fieldClientAndServer = "client_and_server"
	fieldSingleplayer    = "singleplayer"
)

// Map derives (client_side, server_side) from the raw loader fields and the
// legacy project-type label. The project-type rows of the table are fixed
// regardless of the loader fields.
func Map(fields map[string]any, projectType string) (client, server Side) {
	switch projectType {
	case "plugin":
		return Unsupported, Required
	case "datapack":
		return Optional, Required
	case "shader", "resourcepack":
		return Required, Unsupported
	}

	clientOnly := boolField(fields, fieldClientOnly)
	serverOnly := boolField(fields, fieldServerOnly)
	clientAndServer := boolField(fields, fieldClientAndServer)

	singleplayer, ok := lookupBool(fields, fieldSingleplayer)
	if !ok {
		singleplayer = clientAndServer
	}

	switch {
	case clientOnly && serverOnly:
		return Optional, Optional
	case clientOnly && singleplayer:
		return Required, Optional
	case clientOnly:
		return Required, Unsupported
	case serverOnly && singleplayer:
		return Optional, Required
	case serverOnly:
		return Unsupported, Required
	case clientAndServer || singleplayer:
		return Required, Required
	default:
		return Unknown, Unknown
	}
}

// LegacyProjectType returns the v2 project-type label for a version: the
// first of its project types, or "project" when it has none.
func LegacyProjectType(projectTypes []string) string {
	if len(projectTypes) == 0 {
		return "project"
	}
	return projectTypes[0]
}

func boolField(fields map[string]any, name string) bool {
	b, _ := lookupBool(fields, name)
	return b
}

// lookupBool reads a boolean loader field. Non-boolean values count as
// absent.
func lookupBool(fields map[string]any, name string) (value, ok bool) {
	v, present := fields[name]
	if !present {
		return false, false
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, false
	}
	return b, true
}
