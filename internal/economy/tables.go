// Package economy holds the static balance tables for the ranch: crop and
// equipment catalogs, livestock costs and feed rates, market price bands,
// escape odds, energy costs and progression thresholds. Everything here is
// read-only lookup data; the tick engine and action validators consume it so
// that no balance constant lives inline in game logic.
package economy

// Money amounts are whole dollars, feed is bales, gauges are 0..100.
const (
	StartingMoney = 1000
	StartingFeed  = 30
	MaxEnergy     = 100
	LogRetention  = 100
	EventChance   = 0.20
	PestChance    = 0.05

	WeatherRainGain = 40
	WeatherSunLoss  = 25
	WeatherDryLoss  = 15

	DroughtWaterThreshold = 20
	DroughtGrowthFactor   = 0.2

	CostFeedUnit = 5
	FeedPerUnit  = 10

	HorseBaseCost       = 500
	DailyUpkeepPerHorse = 10
	HorseValueFloor     = 100
	HorseHungerPerDay   = 20
	HorseNamingLevel    = 2

	CostChickenBatch = 50 // batch of 5
	ChickensPerBatch = 5
	CostDairyCow     = 250
	CostBeefCow      = 150
	CostGoat         = 75
	CostPig          = 100

	SalePriceEggCaged     = 2
	SalePriceEggFreeRange = 5
	SalePriceMilk         = 15
	SalePriceChickenMeat  = 5
	SalePriceManure       = 3

	PestTreatmentCost = 50
)

// Per-head daily feed consumption in bales.
const (
	FeedCowDairy         = 1.0
	FeedCowBeef          = 1.5
	FeedGoat             = 0.3
	FeedPig              = 0.8
	FeedChickenCaged     = 0.1
	FeedChickenFreeRange = 0.25
)

// PriceBand bounds a floating market price.
type PriceBand struct {
	Initial int
	Min     int
	Max     int
	Swing   int // max absolute per-day delta
}

var (
	BeefBand = PriceBand{Initial: 200, Min: 150, Max: 350, Swing: 50}
	PigBand  = PriceBand{Initial: 120, Min: 80, Max: 200, Swing: 30}
)

// Escape odds per species when infrastructure drops below the threshold.
const (
	EscapeInfraThreshold = 20
	EscapeChanceChicken  = 0.20
	EscapeChanceCattle   = 0.10
	EscapeChanceGoat     = 0.15
	EscapeChancePig      = 0.10
	EscapeMaxChickens    = 3
)

// Energy costs for player actions.
const (
	EnergyCleanStable   = 20
	EnergyRepairFences  = 30
	EnergyPlantCrop     = 40
	EnergyWaterCrops    = 25
	EnergyHarvestCrop   = 25
	EnergyCollectEggs   = 10
	EnergyCollectManure = 10
	EnergyMilkCows      = 15
	EnergyMilkGoats     = 10
	EnergyFeedHorse     = 5
	EnergyGroomHorse    = 10
	EnergyTrainHorse    = 20
	EnergyFeedFlock     = 10
	EnergyCollectFlock  = 5
)

// CropType identifies a field crop.
type CropType string

const (
	CropHay    CropType = "hay"
	CropCorn   CropType = "corn"
	CropCotton CropType = "cotton"
)

// EquipmentID identifies a piece of owned machinery.
type EquipmentID string

const (
	EquipTractor   EquipmentID = "tractor"
	EquipHarvester EquipmentID = "harvester"
	EquipTrailer   EquipmentID = "trailer"
	EquipMower     EquipmentID = "mower"
	EquipBaler     EquipmentID = "baler"
	EquipWagon     EquipmentID = "wagon"
	EquipPicker    EquipmentID = "picker"
	EquipMilker    EquipmentID = "milker"
	EquipHeater    EquipmentID = "heater"
)

type CropDetail struct {
	Name      string
	SeedCost  int
	SellPrice int // per unit of yield
	Requires  []EquipmentID
}

var Crops = map[CropType]CropDetail{
	CropHay:    {Name: "Hay", SeedCost: 50, SellPrice: 3, Requires: []EquipmentID{EquipHarvester, EquipTrailer}},
	CropCorn:   {Name: "Corn", SeedCost: 100, SellPrice: 8, Requires: []EquipmentID{EquipMower, EquipBaler, EquipWagon}},
	CropCotton: {Name: "Cotton", SeedCost: 200, SellPrice: 15, Requires: []EquipmentID{EquipPicker, EquipTrailer}},
}

type EquipmentDetail struct {
	Name        string
	Cost        int
	Description string
}

var Equipment = map[EquipmentID]EquipmentDetail{
	EquipTractor:   {Name: "Farm Tractor", Cost: 1000, Description: "Heavy machinery for field work."},
	EquipHarvester: {Name: "Combine Harvester", Cost: 2500, Description: "Advanced harvesting tech (Hay)."},
	EquipTrailer:   {Name: "Utility Trailer", Cost: 800, Description: "Hauling crops (Hay/Cotton)."},
	EquipMower:     {Name: "Field Mower", Cost: 1200, Description: "Cutting attachment (Corn)."},
	EquipBaler:     {Name: "Crop Baler", Cost: 1500, Description: "Compresses crops into bales (Corn)."},
	EquipWagon:     {Name: "Harvest Wagon", Cost: 600, Description: "Transport for bales (Corn)."},
	EquipPicker:    {Name: "Cotton Picker", Cost: 3000, Description: "Specialized cotton harvester."},
	EquipMilker:    {Name: "Auto-Milker System", Cost: 500, Description: "Industrial milking equipment."},
	EquipHeater:    {Name: "Coop Heater", Cost: 300, Description: "Keeps chickens productive in cold."},
}

// FlockType identifies a group-raised species.
type FlockType string

const (
	FlockChicken FlockType = "chicken"
	FlockCow     FlockType = "cow"
	FlockSheep   FlockType = "sheep"
	FlockPig     FlockType = "pig"
	FlockGoat    FlockType = "goat"
)

type FlockDetail struct {
	Name           string
	Plural         string
	CostPerAnimal  int
	Product        string
	ProductValue   int
	ProductionDays int
	MaxFlockSize   int
	FeedPerAnimal  float64
}

var Flocks = map[FlockType]FlockDetail{
	FlockChicken: {Name: "Chicken", Plural: "Chickens", CostPerAnimal: 100, Product: "egg", ProductValue: 15, ProductionDays: 1, MaxFlockSize: 50, FeedPerAnimal: 1},
	FlockCow:     {Name: "Cow", Plural: "Cows", CostPerAnimal: 500, Product: "milk", ProductValue: 50, ProductionDays: 2, MaxFlockSize: 20, FeedPerAnimal: 2},
	FlockSheep:   {Name: "Sheep", Plural: "Sheep", CostPerAnimal: 300, Product: "wool", ProductValue: 40, ProductionDays: 3, MaxFlockSize: 30, FeedPerAnimal: 1},
	FlockPig:     {Name: "Pig", Plural: "Pigs", CostPerAnimal: 400, Product: "meat", ProductValue: 80, ProductionDays: 5, MaxFlockSize: 25, FeedPerAnimal: 2},
	FlockGoat:    {Name: "Goat", Plural: "Goats", CostPerAnimal: 250, Product: "milk", ProductValue: 35, ProductionDays: 2, MaxFlockSize: 30, FeedPerAnimal: 1},
}

// Player-track leveling. Horse levels use HorseXPThresholds instead.
const (
	BaseXPForLevel = 100
	XPMultiplier   = 1.5
	MaxPlayerLevel = 20
	MaxHorseLevel  = 5
)

// Cumulative XP needed to reach each horse level. Index by current level to
// get the threshold for the next one.
var HorseXPThresholds = [MaxHorseLevel + 1]int{0, 0, 100, 250, 500, 1000}

// ExpansionTier is one step of the farm plot ladder.
type ExpansionTier struct {
	Level      int
	Rows       int
	Cols       int
	CoinCost   int
	EnergyCost int
}

var ExpansionTiers = []ExpansionTier{
	{Level: 1, Rows: 1, Cols: 1, CoinCost: 0, EnergyCost: 0},
	{Level: 2, Rows: 2, Cols: 2, CoinCost: 100, EnergyCost: 10},
	{Level: 4, Rows: 3, Cols: 3, CoinCost: 100, EnergyCost: 10},
	{Level: 7, Rows: 4, Cols: 4, CoinCost: 200, EnergyCost: 20},
	{Level: 11, Rows: 5, Cols: 5, CoinCost: 200, EnergyCost: 20},
	{Level: 16, Rows: 5, Cols: 6, CoinCost: 400, EnergyCost: 40},
}
