package game

// Achievement predicates are pure functions of the snapshot. Once an id is
// in UnlockedAchievements it is never evaluated again, so unlocks are
// one-way.

type Achievement struct {
	ID          string
	Title       string
	Description string
	Category    string // EARLY, MID, LATE
	Unlocked    func(GameState) bool
}

var Achievements = []Achievement{
	{
		ID: "first_steps", Title: "First Steps", Category: "EARLY",
		Description: "Purchase your first Horse.",
		Unlocked:    func(s GameState) bool { return len(s.Horses) > 0 },
	},
	{
		ID: "poultry_farmer", Title: "Poultry Farmer", Category: "EARLY",
		Description: "Own a flock of at least 10 Chickens.",
		Unlocked:    func(s GameState) bool { return s.Chickens >= 10 },
	},
	{
		ID: "haymaker", Title: "Haymaker", Category: "EARLY",
		Description: "Harvest your first field.",
		Unlocked:    func(s GameState) bool { return s.Stats.TotalCropsHarvested > 0 },
	},
	{
		ID: "goatherd", Title: "Goatherd", Category: "MID",
		Description: "Own 5 Goats.",
		Unlocked:    func(s GameState) bool { return s.Goats >= 5 },
	},
	{
		ID: "pig_trader", Title: "Market Timing", Category: "MID",
		Description: "Sell a Pig when the price is over $180.",
		Unlocked:    func(s GameState) bool { return false }, // unlocked by the sell action itself
	},
	{
		ID: "stable_master", Title: "Stable Master", Category: "MID",
		Description: "Own 3 Horses.",
		Unlocked:    func(s GameState) bool { return len(s.Horses) >= 3 },
	},
	{
		ID: "cattle_baron", Title: "Cattle Baron", Category: "LATE",
		Description: "Own 10 Beef Cattle.",
		Unlocked:    func(s GameState) bool { return s.BeefCows >= 10 },
	},
	{
		ID: "cotton_king", Title: "High Cotton", Category: "LATE",
		Description: "Own a Cotton Picker and earn serious money.",
		Unlocked: func(s GameState) bool {
			return s.HasEquipment("picker") && s.Stats.TotalMoneyEarned > 5000
		},
	},
	{
		ID: "tycoon", Title: "Tycoon", Category: "LATE",
		Description: "Accumulate $10,000 in funds.",
		Unlocked:    func(s GameState) bool { return s.Money >= 10000 },
	},
}

// EvaluateAchievements returns the ids whose predicates transitioned to true
// and are not yet unlocked, in catalog order.
func EvaluateAchievements(s GameState) []string {
	var unlocked []string
	for _, a := range Achievements {
		if s.HasUnlocked(a.ID) {
			continue
		}
		if a.Unlocked(s) {
			unlocked = append(unlocked, a.ID)
		}
	}
	return unlocked
}

// AchievementTitle returns the display title for an id, or the id itself.
func AchievementTitle(id string) string {
	for _, a := range Achievements {
		if a.ID == id {
			return a.Title
		}
	}
	return id
}
