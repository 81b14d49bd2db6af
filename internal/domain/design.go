package domain

// Design is the portable document envelope used for export, import and the
// local autosave snapshot. Metadata is attached on export only; import works
// without it.
type Design struct {
	Version      string          `json:"version"`
	Timestamp    string          `json:"timestamp"`
	Sections     []Section       `json:"sections"`
	GlobalStyles GlobalStyles    `json:"globalStyles"`
	Metadata     *DesignMetadata `json:"metadata,omitempty"`
}

// DesignMetadata describes an exported design.
type DesignMetadata struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	TotalSections int    `json:"totalSections"`
}

// DesignVersion is the envelope version written by this builder.
const DesignVersion = "2.0"

// AutosaveKey is the fixed snapshot-store key the live document is kept
// under for session continuity.
const AutosaveKey = "website-builder-autosave"

// DeviceScreen is the preview viewport the canvas renders at. Pure UI state.
type DeviceScreen string

const (
	DeviceMobile  DeviceScreen = "mobile"
	DeviceTablet  DeviceScreen = "tablet"
	DeviceMonitor DeviceScreen = "monitor"
)

// BuilderState is the live document plus UI-selection state. An empty
// SelectedSectionID means nothing is selected.
type BuilderState struct {
	Sections          []Section    `json:"sections"`
	SelectedSectionID string       `json:"selectedSectionId"`
	PreviewMode       bool         `json:"previewMode"`
	GlobalStyles      GlobalStyles `json:"globalStyles"`
	ShowPropertyPanel bool         `json:"showPropertyPanel"`
}

// SnapshotStore abstracts the key-value byte store the document is
// debounce-persisted to. Load returns (nil, nil) when nothing is stored.
type SnapshotStore interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}
