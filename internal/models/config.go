package models

// InspectConfig contains configuration for the inspection commands
type InspectConfig struct {
	// Input
	Path     string // Archive or index file
	InputDir string // Directory to scan
	Index    string // Index to compare scanned archives against

	// Provenance
	Keyring   string // Public keyring used to verify detached signatures
	Signature string // Detached signature, defaults to <Path>.asc

	// Presentation
	Output string // table, yaml or dump
}
