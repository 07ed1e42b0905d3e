package domain

// Farm rule defaults
const (
	// DefaultGridSize is the side length of the square plot grid (5 -> 25 plots)
	DefaultGridSize = 5

	// DefaultPlantCost is the coin price of planting one crop
	DefaultPlantCost = 5

	// DefaultVirtualToRealRatio is how many virtual harvests make one real product
	DefaultVirtualToRealRatio = 100

	// DefaultInitialCoins is the balance of a freshly created farm
	DefaultInitialCoins = 100

	// DefaultFarmID is the farm used when a caller does not name one
	DefaultFarmID int64 = 1

	DefaultFarmName = "My Farm"
)

// Crop types shipped in the default catalog
const (
	CropCarrot     CropType = "carrot"
	CropPotato     CropType = "potato"
	CropWatermelon CropType = "watermelon"
)
