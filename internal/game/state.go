package game

import (
	"fmt"

	"homestead/internal/economy"
)

// Weather tokens sampled once per day.
var WeatherKinds = []string{"Sunny", "Rainy", "Cloudy", "Windy", "Stormy"}

// Breed of an individually-owned horse.
type Breed string

const (
	BreedThoroughbred Breed = "Thoroughbred"
	BreedArabian      Breed = "Arabian"
	BreedClydesdale   Breed = "Clydesdale"
	BreedMustang      Breed = "Mustang"
	BreedQuarterHorse Breed = "Quarter Horse"
)

var Breeds = []Breed{BreedThoroughbred, BreedArabian, BreedClydesdale, BreedMustang, BreedQuarterHorse}

// Horse is an individually owned and tracked animal. Gauges are 0..100;
// hunger counts up (100 is starving). Experience is cumulative and never
// negative, level never decreases.
type Horse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsNamed    bool   `json:"is_named"`
	Breed      Breed  `json:"breed"`
	AgeMonths  int    `json:"age_months"`
	Health     int    `json:"health"`
	Hunger     int    `json:"hunger"`
	Happiness  int    `json:"happiness"`
	Stamina    int    `json:"stamina"`
	Experience int    `json:"experience"`
	Level      int    `json:"level"`
	Value      int    `json:"value"`
	Bio        string `json:"bio"`
}

// Flock is a group-raised herd with shared welfare gauges.
type Flock struct {
	ID                string            `json:"id"`
	Type              economy.FlockType `json:"type"`
	Count             int               `json:"count"`
	MaxCount          int               `json:"max_count"`
	Health            int               `json:"health"`
	Happiness         int               `json:"happiness"`
	Hunger            int               `json:"hunger"`
	FedToday          bool              `json:"fed_today"`
	ProductionReady   int               `json:"production_ready"`
	DaysSinceProduced int               `json:"days_since_produced"`
}

// Stats are cumulative, monotonically non-decreasing counters.
type Stats struct {
	TotalMoneyEarned      int `json:"total_money_earned"`
	TotalCropsHarvested   int `json:"total_crops_harvested"`
	TotalAnimalsPurchased int `json:"total_animals_purchased"`
	MaxHorsesOwned        int `json:"max_horses_owned"`
}

// LogEntry severity tags.
const (
	LogInfo    = "info"
	LogSuccess = "success"
	LogWarning = "warning"
	LogDanger  = "danger"
	LogFlavor  = "flavor"
)

type LogEntry struct {
	ID      string `json:"id"`
	Day     int    `json:"day"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// EventOption is one player choice on a pending event. Apply is a pure
// function of the state; it must not capture mutable outer variables.
type EventOption struct {
	Label      string                    `json:"label"`
	LogMessage string                    `json:"log_message"`
	Apply      func(GameState) GameState `json:"-"`
}

// FarmEvent is a modal choice awaiting resolution. Events are built from the
// catalog by id plus an integer payload (e.g. a rolled harvest yield), so a
// pending event survives a JSON round trip: the service rehydrates the Apply
// closures from the catalog on load.
type FarmEvent struct {
	ID          string        `json:"id"`
	Payload     int           `json:"payload,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Options     []EventOption `json:"options"`
}

// CareFlags records which daily chores were already done today. They are
// cleared in a single dedicated tick step.
type CareFlags struct {
	CollectedEggs   bool `json:"collected_eggs"`
	MilkedCows      bool `json:"milked_cows"`
	MilkedGoats     bool `json:"milked_goats"`
	CollectedManure bool `json:"collected_manure"`
}

// GameState is the full snapshot of one player's ranch. It is only ever
// transformed: single-field deltas by action validators during a day, and the
// bulk AdvanceDay transform at the day boundary.
type GameState struct {
	FarmName string  `json:"farm_name"`
	Day      int     `json:"day"`
	Money    int     `json:"money"`
	Feed     float64 `json:"feed"`

	Energy    int `json:"energy"`
	MaxEnergy int `json:"max_energy"`

	Cleanliness    int    `json:"cleanliness"`
	Infrastructure int    `json:"infrastructure"`
	Weather        string `json:"weather"`

	// Field crop. CropGrowth 0 means unplanted, 100 means ready.
	ActiveCrop CropRef `json:"active_crop"`
	CropGrowth int     `json:"crop_growth"`
	FieldWater int     `json:"field_water"`
	FieldPests bool    `json:"field_pests"`

	// Grouped livestock.
	Chickens    int  `json:"chickens"`
	IsFreeRange bool `json:"is_free_range"`
	DairyCows   int  `json:"dairy_cows"`
	BeefCows    int  `json:"beef_cows"`
	BeefPrice   int  `json:"beef_price"`
	Goats       int  `json:"goats"`
	Pigs        int  `json:"pigs"`
	PigPrice    int  `json:"pig_price"`

	Care CareFlags `json:"care"`

	// Inventory quantities are kept at zero rather than deleted.
	Eggs   int `json:"eggs"`
	Milk   int `json:"milk"`
	Manure int `json:"manure"`
	Wool   int `json:"wool"`

	Equipment []economy.EquipmentID `json:"equipment"`

	FarmRows int `json:"farm_rows"`
	FarmCols int `json:"farm_cols"`

	Flocks []Flock `json:"flocks"`
	Horses []Horse `json:"horses"`

	PlayerXP    int `json:"player_xp"`
	PlayerLevel int `json:"player_level"`

	UnlockedAchievements []string `json:"unlocked_achievements"`
	Stats                Stats    `json:"stats"`

	// LogSeq numbers log entries. It only ever increments, so entry ids
	// stay unique across retention eviction.
	LogSeq int        `json:"log_seq"`
	Logs   []LogEntry `json:"logs"`
	News   []string   `json:"news"`

	ActiveEvent *FarmEvent `json:"active_event,omitempty"`
}

// CropRef is the nullable active crop type ("" = none).
type CropRef string

// NewGameState returns the day-one snapshot for a fresh player.
func NewGameState(farmName string) GameState {
	return GameState{
		FarmName:             farmName,
		Day:                  1,
		Money:                economy.StartingMoney,
		Feed:                 economy.StartingFeed,
		Energy:               economy.MaxEnergy,
		MaxEnergy:            economy.MaxEnergy,
		Cleanliness:          100,
		Infrastructure:       100,
		Weather:              "Sunny",
		FieldWater:           50,
		BeefPrice:            economy.BeefBand.Initial,
		PigPrice:             economy.PigBand.Initial,
		Equipment:            []economy.EquipmentID{},
		FarmRows:             economy.ExpansionTiers[0].Rows,
		FarmCols:             economy.ExpansionTiers[0].Cols,
		PlayerLevel:          1,
		UnlockedAchievements: []string{},
		Logs:                 []LogEntry{},
		News: []string{
			"Welcome to the Market Watch",
			"Hay prices stable at $5/bale",
			"Local weather: clear skies ahead",
		},
	}
}

// HasEquipment reports whether the given equipment id is owned.
func (s GameState) HasEquipment(id economy.EquipmentID) bool {
	for _, e := range s.Equipment {
		if e == id {
			return true
		}
	}
	return false
}

// FindHorse returns the index of the horse with the given id, or -1.
func (s GameState) FindHorse(id string) int {
	for i := range s.Horses {
		if s.Horses[i].ID == id {
			return i
		}
	}
	return -1
}

// FindFlock returns the index of the flock with the given id, or -1.
func (s GameState) FindFlock(id string) int {
	for i := range s.Flocks {
		if s.Flocks[i].ID == id {
			return i
		}
	}
	return -1
}

// HasUnlocked reports whether an achievement id is already unlocked.
func (s GameState) HasUnlocked(id string) bool {
	for _, a := range s.UnlockedAchievements {
		if a == id {
			return true
		}
	}
	return false
}

// appendLog appends an entry and enforces the retention cap, evicting the
// oldest entries first. Entry ids come from the state's own sequence counter
// rather than ambient randomness, keeping AdvanceDay reproducible for a
// given seed.
func appendLog(logs []LogEntry, seq *int, day int, message, kind string) []LogEntry {
	*seq++
	logs = append(logs, LogEntry{ID: fmt.Sprintf("log-%d", *seq), Day: day, Message: message, Type: kind})
	if len(logs) > economy.LogRetention {
		logs = logs[len(logs)-economy.LogRetention:]
	}
	return logs
}
