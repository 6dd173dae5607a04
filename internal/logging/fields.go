package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldPath is the standardized structured logging key for filesystem paths.
	FieldPath = "path"
	// FieldKind is the standardized structured logging key for media kinds.
	FieldKind = "kind"
	// FieldDestination is the standardized structured logging key for organize targets.
	FieldDestination = "destination"
	// FieldOperation is the standardized structured logging key for copy/move modes.
	FieldOperation = "operation"
	// FieldSession is the standardized structured logging key for organize session IDs.
	FieldSession = "session_id"
)
