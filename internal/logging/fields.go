package logging

// Field names for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Decoding.
	FieldStage    = "stage"
	FieldTokens   = "tokens"
	FieldRefs     = "refs"
	FieldLanguage = "language"
	FieldBytes    = "bytes"
	FieldJobs     = "jobs"
	FieldFormat   = "format"

	// Run statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesDecoded    = "files_decoded"
	FieldFilesFailed     = "files_failed"
	FieldDuration        = "duration"

	// Version.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
