package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin farm transaction"
)

// Error Messages - Farm Operations
const (
	ErrMsgFailedToEnsureFarm      = "failed to ensure farm"
	ErrMsgFailedToEnsurePlots     = "failed to ensure plots"
	ErrMsgFailedToGetFarm         = "failed to get farm"
	ErrMsgFailedToDebitCoins      = "failed to debit coins"
	ErrMsgFailedToCreditHarvest   = "failed to credit harvest"
	ErrMsgFailedToConsumeHarvests = "failed to consume virtual harvests"
)

// Error Messages - Plot Operations
const (
	ErrMsgFailedToGetPlot      = "failed to get plot"
	ErrMsgFailedToGetPlots     = "failed to get plots"
	ErrMsgFailedToListActive   = "failed to list active plots"
	ErrMsgFailedToAdvanceStage = "failed to advance plot stage"
	ErrMsgFailedToPlantPlot    = "failed to plant plot"
	ErrMsgFailedToResetPlot    = "failed to reset plot"
)

// Error Messages - Harvest History
const (
	ErrMsgFailedToInsertHistory = "failed to insert harvest history"
	ErrMsgFailedToCountHarvests = "failed to count harvests"
	ErrMsgFailedToListHistory   = "failed to list harvest history"
)

// Error Messages - Delivery Orders
const (
	ErrMsgFailedToCreateOrder       = "failed to create delivery order"
	ErrMsgFailedToListOrders        = "failed to list delivery orders"
	ErrMsgFailedToGetOrder          = "failed to get delivery order"
	ErrMsgFailedToUpdateOrderStatus = "failed to update delivery order status"
)

// Error Messages - Event Log
const (
	ErrMsgFailedToLogEvent      = "failed to insert farm event"
	ErrMsgFailedToListEvents    = "failed to list farm events"
	ErrMsgFailedToCleanupEvents = "failed to delete old farm events"
)

// Error Messages - Crop Catalog
const (
	ErrMsgFailedToGetCatalog  = "failed to get crop catalog"
	ErrMsgFailedToUpsertEntry = "failed to upsert crop catalog entry"
)

// ============================================================================
// Column lists
// ============================================================================

const (
	farmColumns  = `farm_id, name, coin_balance, virtual_harvest_total, total_delivered, created_at, updated_at`
	plotColumns  = `plot_id, farm_id, position, crop_type, stage, planted_at`
	orderColumns = `order_id, farm_id, reference, quantity, virtual_units_consumed, status,
		recipient_name, recipient_phone, delivery_address, notes,
		confirmed_at, shipped_at, delivered_at, created_at, updated_at`
)

// ============================================================================
// Farm queries
// ============================================================================

const (
	SQLEnsureFarm = `
		INSERT INTO farms (farm_id, name, coin_balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (farm_id) DO NOTHING`

	SQLEnsurePlots = `
		INSERT INTO plots (farm_id, position)
		SELECT $1, gs FROM generate_series(0, $2::int - 1) AS gs
		ON CONFLICT (farm_id, position) DO NOTHING`

	SQLGetFarm = `SELECT ` + farmColumns + ` FROM farms WHERE farm_id = $1`

	SQLGetFarmForUpdate = SQLGetFarm + ` FOR UPDATE`

	// Guarded debit: the row only changes when the balance covers the amount
	SQLDebitCoins = `
		UPDATE farms
		SET coin_balance = coin_balance - $2, updated_at = NOW()
		WHERE farm_id = $1 AND coin_balance >= $2
		RETURNING coin_balance`

	SQLCreditHarvest = `
		UPDATE farms
		SET coin_balance = coin_balance + $2,
		    virtual_harvest_total = virtual_harvest_total + 1,
		    updated_at = NOW()
		WHERE farm_id = $1
		RETURNING ` + farmColumns

	SQLConsumeVirtualHarvests = `
		UPDATE farms
		SET virtual_harvest_total = virtual_harvest_total - $2,
		    total_delivered = total_delivered + $3,
		    updated_at = NOW()
		WHERE farm_id = $1 AND virtual_harvest_total >= $2
		RETURNING ` + farmColumns
)

// ============================================================================
// Plot queries
// ============================================================================

const (
	SQLGetPlots = `SELECT ` + plotColumns + ` FROM plots WHERE farm_id = $1 ORDER BY position`

	SQLGetPlot = `SELECT ` + plotColumns + ` FROM plots WHERE plot_id = $1`

	SQLGetPlotForUpdate = SQLGetPlot + ` FOR UPDATE`

	SQLListActivePlots = `
		SELECT ` + plotColumns + `
		FROM plots
		WHERE stage IN ('planted', 'growing')
		ORDER BY plot_id`

	// Compare-and-swap on the stage column
	SQLAdvancePlotStage = `
		UPDATE plots
		SET stage = $3, updated_at = NOW()
		WHERE plot_id = $1 AND stage = $2 AND planted_at = $4`

	SQLPlantPlot = `
		UPDATE plots
		SET crop_type = $2, stage = 'planted', planted_at = $3, updated_at = NOW()
		WHERE plot_id = $1 AND stage = 'empty'
		RETURNING ` + plotColumns

	SQLResetPlot = `
		UPDATE plots
		SET crop_type = NULL, stage = 'empty', planted_at = NULL, updated_at = NOW()
		WHERE plot_id = $1
		RETURNING ` + plotColumns
)

// ============================================================================
// Harvest history queries
// ============================================================================

const (
	SQLInsertHarvestHistory = `
		INSERT INTO harvest_history (farm_id, crop_type, coins_earned, harvested_at)
		VALUES ($1, $2, $3, $4)
		RETURNING history_id`

	SQLGetHarvestCounts = `
		SELECT crop_type, COUNT(*)
		FROM harvest_history
		WHERE farm_id = $1
		GROUP BY crop_type`

	SQLListHarvestHistory = `
		SELECT history_id, farm_id, crop_type, coins_earned, harvested_at
		FROM harvest_history
		WHERE farm_id = $1
		ORDER BY harvested_at DESC, history_id DESC
		LIMIT $2`
)

// ============================================================================
// Delivery order queries
// ============================================================================

const (
	SQLCreateDeliveryOrder = `
		INSERT INTO delivery_orders (
			farm_id, reference, quantity, virtual_units_consumed, status,
			recipient_name, recipient_phone, delivery_address, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + orderColumns

	SQLListDeliveryOrders = `
		SELECT ` + orderColumns + `
		FROM delivery_orders
		WHERE farm_id = $1
		ORDER BY created_at DESC, order_id DESC
		LIMIT $2`

	SQLGetDeliveryOrder = `
		SELECT ` + orderColumns + `
		FROM delivery_orders
		WHERE farm_id = $1 AND order_id = $2`

	// Milestone timestamps are only stamped the first time a status is reached
	SQLUpdateDeliveryOrderStatus = `
		UPDATE delivery_orders
		SET status = $3,
		    confirmed_at = COALESCE(confirmed_at, $4),
		    shipped_at = COALESCE(shipped_at, $5),
		    delivered_at = COALESCE(delivered_at, $6),
		    updated_at = NOW()
		WHERE farm_id = $1 AND order_id = $2
		RETURNING ` + orderColumns
)

// ============================================================================
// Crop catalog queries
// ============================================================================

const (
	SQLGetCropCatalog = `
		SELECT crop_type, name, grow_duration_ms, harvest_value, image_ref
		FROM crop_catalog
		ORDER BY crop_type`

	SQLUpsertCropCatalogEntry = `
		INSERT INTO crop_catalog (crop_type, name, grow_duration_ms, harvest_value, image_ref)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (crop_type) DO UPDATE
		SET name = EXCLUDED.name,
		    grow_duration_ms = EXCLUDED.grow_duration_ms,
		    harvest_value = EXCLUDED.harvest_value,
		    image_ref = EXCLUDED.image_ref,
		    updated_at = NOW()`
)

// ============================================================================
// Event log queries
// ============================================================================

const (
	SQLInsertFarmEvent = `
		INSERT INTO farm_events (farm_id, event_type, schema_version, payload)
		VALUES ($1, $2, $3, $4)`

	SQLListFarmEvents = `
		SELECT event_id, farm_id, event_type, schema_version, payload, created_at
		FROM farm_events
		WHERE farm_id = $1
		ORDER BY created_at DESC, event_id DESC
		LIMIT $2`

	SQLDeleteFarmEventsBefore = `DELETE FROM farm_events WHERE created_at < $1`
)
