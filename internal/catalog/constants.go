package catalog

// SchemaPath is the JSON schema every catalog file must satisfy
const SchemaPath = "configs/schemas/crops.schema.json"

// DefaultPath is where the service looks for the catalog file
const DefaultPath = "configs/crops.json"

// ==================== Error Messages ====================

const (
	ErrMsgReadFileFailed    = "failed to read crop catalog %s: %w"
	ErrMsgSchemaFailed      = "crop catalog %s failed schema validation: %w"
	ErrMsgParseFailed       = "failed to parse crop catalog %s: %w"
	ErrMsgNoCrops           = "no crops defined"
	ErrMsgEmptyType         = "crop at index %d has empty type"
	ErrMsgDuplicateType     = "duplicate crop type %q"
	ErrMsgNonPositiveGrow   = "crop %q has non-positive grow_duration_ms"
	ErrMsgNegativeValue     = "crop %q has negative harvest_value"
	ErrMsgLoadExistingCrops = "failed to load existing catalog: %w"
	ErrMsgUpsertCropFailed  = "failed to upsert crop %q: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgCatalogLoaded   = "Crop catalog loaded"
	LogMsgCatalogFallback = "Crop catalog file not found, using built-in catalog"
	LogMsgCropInserted    = "Inserted crop into catalog"
	LogMsgCropUpdated     = "Updated crop in catalog"
	LogMsgCatalogSynced   = "Crop catalog synced"
)
