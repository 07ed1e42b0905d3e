package domain

// CropPlantedPayload is the event payload for farm.crop_planted events
type CropPlantedPayload struct {
	FarmID         int64    `json:"farm_id"`
	PlotID         int64    `json:"plot_id"`
	Position       int      `json:"position"`
	Crop           CropType `json:"crop"`
	PlantedAt      int64    `json:"planted_at"` // unix millis
	CoinsSpent     int      `json:"coins_spent"`
	NewCoinBalance int      `json:"new_coin_balance"`
}

// PlotStageChangedPayload is the event payload for farm.plot_stage_changed events
type PlotStageChangedPayload struct {
	FarmID    int64    `json:"farm_id"`
	PlotID    int64    `json:"plot_id"`
	Position  int      `json:"position"`
	Crop      CropType `json:"crop"`
	FromStage Stage    `json:"from_stage"`
	ToStage   Stage    `json:"to_stage"`
	Timestamp int64    `json:"timestamp"`
}

// CropHarvestedPayload is the event payload for farm.crop_harvested events
type CropHarvestedPayload struct {
	FarmID               int64    `json:"farm_id"`
	PlotID               int64    `json:"plot_id"`
	Crop                 CropType `json:"crop"`
	CoinsEarned          int      `json:"coins_earned"`
	NewCoinBalance       int      `json:"new_coin_balance"`
	TotalVirtualHarvests int      `json:"total_virtual_harvests"`
	Timestamp            int64    `json:"timestamp"`
}

// RealProductUnlockedPayload is the event payload for farm.real_product_unlocked events
type RealProductUnlockedPayload struct {
	FarmID            int64 `json:"farm_id"`
	RealProductsReady int   `json:"real_products_ready"`
	Timestamp         int64 `json:"timestamp"`
}

// DeliveryClaimedPayload is the event payload for farm.delivery_claimed events
type DeliveryClaimedPayload struct {
	FarmID        int64  `json:"farm_id"`
	OrderID       int64  `json:"order_id"`
	Reference     string `json:"reference"`
	Quantity      int    `json:"quantity"`
	VirtualUsed   int    `json:"virtual_used"`
	Remaining     int    `json:"remaining"`
	RecipientName string `json:"recipient_name,omitempty"`
	Timestamp     int64  `json:"timestamp"`
}
