package domain

import "time"

// HarvestHistoryEntry is one row of the append-only harvest log
type HarvestHistoryEntry struct {
	ID          int64     `json:"id"`
	FarmID      int64     `json:"farm_id"`
	CropType    CropType  `json:"crop_type"`
	CoinsEarned int       `json:"coins_earned"`
	HarvestedAt time.Time `json:"harvested_at"`
}

// HarvestResult is the outcome of harvesting a ready plot
type HarvestResult struct {
	Plot                 Plot     `json:"plot"`
	NewCoinBalance       int      `json:"new_coin_balance"`
	TotalVirtualHarvests int      `json:"total_virtual_harvests"`
	RealProductsReady    int      `json:"real_products_ready"`
	ProgressToNextReal   int      `json:"progress_to_next_real"`
	HarvestedCrop        CropType `json:"harvested_crop"`
	EarnedCoins          int      `json:"earned_coins"`

	// RealProductUnlocked is set when this harvest crossed a multiple of the conversion ratio
	RealProductUnlocked bool `json:"real_product_unlocked"`
}

// HarvestStats counts successful harvests per crop type
type HarvestStats struct {
	CountsByCropType map[CropType]int `json:"counts_by_crop_type"`
	Total            int              `json:"total"`
}

// DeliveryStatus summarises the virtual-to-real conversion progress of a farm
type DeliveryStatus struct {
	TotalVirtualHarvests int `json:"total_virtual_harvests"`
	RealProductsReady    int `json:"real_products_ready"`
	ProgressToNextReal   int `json:"progress_to_next_real"`
	PercentToNext        int `json:"percent_to_next"`
	TotalDelivered       int `json:"total_delivered"`
	Ratio                int `json:"ratio"`
}
