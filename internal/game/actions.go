package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"homestead/internal/economy"
)

// Action validators. Each checks resources and daily flags before touching
// the state, returns the new snapshot plus a log message, and leaves the
// input untouched on error. Chore and market actions are blocked while a
// random event awaits resolution.

func guardEvent(s GameState) error {
	if s.ActiveEvent != nil {
		return ErrEventPending
	}
	return nil
}

func spendEnergy(s *GameState, cost int) error {
	if s.Energy < cost {
		return ErrInsufficientEnergy
	}
	s.Energy -= cost
	return nil
}

func spendMoney(s *GameState, cost int) error {
	if s.Money < cost {
		return ErrInsufficientFunds
	}
	s.Money -= cost
	return nil
}

// -- Market --

func BuyFeed(state GameState) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	s := cloneState(state)
	if err := spendMoney(&s, economy.CostFeedUnit); err != nil {
		return state, "", err
	}
	s.Feed += economy.FeedPerUnit
	return s, fmt.Sprintf("Bought %d feed for $%d.", economy.FeedPerUnit, economy.CostFeedUnit), nil
}

func BuyChickens(state GameState) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	s := cloneState(state)
	if err := spendMoney(&s, economy.CostChickenBatch); err != nil {
		return state, "", err
	}
	s.Chickens += economy.ChickensPerBatch
	s.Stats.TotalAnimalsPurchased += economy.ChickensPerBatch
	return s, fmt.Sprintf("Purchased a flock of %d chickens.", economy.ChickensPerBatch), nil
}

func buyGrouped(state GameState, cost int, bump func(*GameState), msg string) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	s := cloneState(state)
	if err := spendMoney(&s, cost); err != nil {
		return state, "", err
	}
	bump(&s)
	s.Stats.TotalAnimalsPurchased++
	return s, msg, nil
}

func BuyDairyCow(state GameState) (GameState, string, error) {
	return buyGrouped(state, economy.CostDairyCow, func(s *GameState) { s.DairyCows++ }, "Purchased a Dairy Cow.")
}

func BuyBeefCow(state GameState) (GameState, string, error) {
	return buyGrouped(state, economy.CostBeefCow, func(s *GameState) { s.BeefCows++ },
		fmt.Sprintf("Purchased a Beef Steer for $%d.", economy.CostBeefCow))
}

func BuyGoat(state GameState) (GameState, string, error) {
	return buyGrouped(state, economy.CostGoat, func(s *GameState) { s.Goats++ }, "Purchased a Goat.")
}

func BuyPig(state GameState) (GameState, string, error) {
	return buyGrouped(state, economy.CostPig, func(s *GameState) { s.Pigs++ }, "Purchased a Pig.")
}

func BuyEquipment(state GameState, id economy.EquipmentID) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	detail, ok := economy.Equipment[id]
	if !ok {
		return state, "", fmt.Errorf("equipment %q: %w", id, ErrUnknownTarget)
	}
	if state.HasEquipment(id) {
		return state, "", fmt.Errorf("already own %s: %w", detail.Name, ErrAlreadyDone)
	}
	s := cloneState(state)
	if err := spendMoney(&s, detail.Cost); err != nil {
		return state, "", err
	}
	s.Equipment = append(s.Equipment, id)
	return s, fmt.Sprintf("Purchased %s.", detail.Name), nil
}

func SellBeefCow(state GameState) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	if state.BeefCows == 0 {
		return state, "", fmt.Errorf("no beef cattle: %w", ErrNothingToDo)
	}
	s := cloneState(state)
	price := s.BeefPrice
	s.Money += price
	s.BeefCows--
	s.Stats.TotalMoneyEarned += price
	return s, fmt.Sprintf("Sold a Beef Steer for market price: $%d.", price), nil
}

func SellPig(state GameState) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	if state.Pigs == 0 {
		return state, "", fmt.Errorf("no pigs: %w", ErrNothingToDo)
	}
	s := cloneState(state)
	price := s.PigPrice
	s.Money += price
	s.Pigs--
	s.Stats.TotalMoneyEarned += price
	if price >= 180 && !s.HasUnlocked("pig_trader") {
		s.UnlockedAchievements = append(s.UnlockedAchievements, "pig_trader")
		s.Logs = appendLog(s.Logs, &s.LogSeq, s.Day, "ACHIEVEMENT UNLOCKED: Market Timing", LogSuccess)
	}
	return s, fmt.Sprintf("Sold a Pig for market price: $%d.", price), nil
}

func SellChicken(state GameState) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	if state.Chickens == 0 {
		return state, "", fmt.Errorf("no chickens: %w", ErrNothingToDo)
	}
	s := cloneState(state)
	s.Money += economy.SalePriceChickenMeat
	s.Chickens--
	s.Stats.TotalMoneyEarned += economy.SalePriceChickenMeat
	return s, fmt.Sprintf("Sold a chicken for meat ($%d).", economy.SalePriceChickenMeat), nil
}

// SellProduce empties the produce inventory at current prices.
func SellProduce(state GameState) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	if state.Eggs == 0 && state.Milk == 0 && state.Manure == 0 && state.Wool == 0 {
		return state, "", fmt.Errorf("nothing to sell: %w", ErrNothingToDo)
	}
	s := cloneState(state)
	eggPrice := economy.SalePriceEggCaged
	if s.IsFreeRange {
		eggPrice = economy.SalePriceEggFreeRange
	}
	earnings := s.Eggs*eggPrice + s.Milk*economy.SalePriceMilk +
		s.Manure*economy.SalePriceManure + s.Wool*economy.Flocks[economy.FlockSheep].ProductValue
	s.Eggs, s.Milk, s.Manure, s.Wool = 0, 0, 0, 0
	s.Money += earnings
	s.Stats.TotalMoneyEarned += earnings
	return s, fmt.Sprintf("Sold produce for $%d.", earnings), nil
}

func ToggleCoopMode(state GameState) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	if state.Chickens == 0 {
		return state, "", fmt.Errorf("no chickens for a coop: %w", ErrNothingToDo)
	}
	s := cloneState(state)
	s.IsFreeRange = !s.IsFreeRange
	msg := "Coop converted to Free Range. (Higher feed cost, premium eggs)"
	if !s.IsFreeRange {
		msg = "Coop converted to Caged mode. (Lower expenses, cheap eggs)"
	}
	return s, msg, nil
}

// -- Chores --

func CleanStable(state GameState) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	s := cloneState(state)
	if err := spendEnergy(&s, economy.EnergyCleanStable); err != nil {
		return state, "", err
	}
	s.Cleanliness = clampGauge(s.Cleanliness + 30)
	return s, "You mucked out the stables. It smells better.", nil
}

func RepairFences(state GameState) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	s := cloneState(state)
	if err := spendEnergy(&s, economy.EnergyRepairFences); err != nil {
		return state, "", err
	}
	s.Infrastructure = clampGauge(s.Infrastructure + 25)
	return s, "Repaired the broken fences.", nil
}

func CollectEggs(state GameState, rng *rand.Rand) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	if state.Chickens == 0 {
		return state, "", fmt.Errorf("no chickens: %w", ErrNothingToDo)
	}
	if state.Care.CollectedEggs {
		return state, "", fmt.Errorf("eggs already collected: %w", ErrAlreadyDone)
	}
	s := cloneState(state)
	if err := spendEnergy(&s, economy.EnergyCollectEggs); err != nil {
		return state, "", err
	}
	// 0.5 to 1.1 eggs per bird, never more than one per bird.
	amount := int(float64(s.Chickens) * (0.5 + rng.Float64()*0.6))
	if amount > s.Chickens {
		amount = s.Chickens
	}
	s.Eggs += amount
	s.Care.CollectedEggs = true
	return s, fmt.Sprintf("Collected %d eggs from the coop.", amount), nil
}

func CollectManure(state GameState) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	if state.Chickens == 0 {
		return state, "", fmt.Errorf("no chickens: %w", ErrNothingToDo)
	}
	if state.Care.CollectedManure {
		return state, "", fmt.Errorf("manure already collected: %w", ErrAlreadyDone)
	}
	s := cloneState(state)
	if err := spendEnergy(&s, economy.EnergyCollectManure); err != nil {
		return state, "", err
	}
	amount := maxInt(1, s.Chickens*3/10)
	s.Manure += amount
	s.Care.CollectedManure = true
	return s, fmt.Sprintf("Collected %d bags of fertilizer.", amount), nil
}

func MilkCows(state GameState, rng *rand.Rand) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	if state.DairyCows == 0 {
		return state, "", fmt.Errorf("no dairy cows: %w", ErrNothingToDo)
	}
	if state.Care.MilkedCows {
		return state, "", fmt.Errorf("cows already milked: %w", ErrAlreadyDone)
	}
	s := cloneState(state)
	if err := spendEnergy(&s, economy.EnergyMilkCows); err != nil {
		return state, "", err
	}
	amount := s.DairyCows * (6 + rng.Intn(2))
	s.Milk += amount
	s.Care.MilkedCows = true
	return s, fmt.Sprintf("Milked the herd for %d gallons.", amount), nil
}

func MilkGoats(state GameState, rng *rand.Rand) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	if state.Goats == 0 {
		return state, "", fmt.Errorf("no goats: %w", ErrNothingToDo)
	}
	if state.Care.MilkedGoats {
		return state, "", fmt.Errorf("goats already milked: %w", ErrAlreadyDone)
	}
	s := cloneState(state)
	if err := spendEnergy(&s, economy.EnergyMilkGoats); err != nil {
		return state, "", err
	}
	amount := int(float64(s.Goats) * (0.5 + rng.Float64()))
	s.Milk += amount
	s.Care.MilkedGoats = true
	return s, fmt.Sprintf("Milked the goats for %d gallons.", amount), nil
}

// -- Crops --

func PlantCrop(state GameState, crop economy.CropType) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	detail, ok := economy.Crops[crop]
	if !ok {
		return state, "", fmt.Errorf("crop %q: %w", crop, ErrUnknownTarget)
	}
	if state.CropGrowth > 0 {
		return state, "", ErrFieldOccupied
	}
	var missing []string
	for _, req := range detail.Requires {
		if !state.HasEquipment(req) {
			missing = append(missing, economy.Equipment[req].Name)
		}
	}
	if len(missing) > 0 {
		return state, "", fmt.Errorf("cannot plant %s, missing %s: %w", detail.Name, strings.Join(missing, ", "), ErrMissingEquipment)
	}
	s := cloneState(state)
	if err := spendMoney(&s, detail.SeedCost); err != nil {
		return state, "", err
	}
	if err := spendEnergy(&s, economy.EnergyPlantCrop); err != nil {
		return state, "", err
	}
	s.CropGrowth = 1
	s.ActiveCrop = CropRef(crop)
	s.FieldWater = 50
	s.FieldPests = false
	return s, fmt.Sprintf("Planted %s.", detail.Name), nil
}

func WaterCrops(state GameState) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	if state.CropGrowth == 0 {
		return state, "", fmt.Errorf("nothing planted: %w", ErrNothingToDo)
	}
	if state.FieldWater >= 90 {
		return state, "", fmt.Errorf("field is already saturated: %w", ErrAlreadyDone)
	}
	s := cloneState(state)
	if err := spendEnergy(&s, economy.EnergyWaterCrops); err != nil {
		return state, "", err
	}
	s.FieldWater = clampGauge(s.FieldWater + 40)
	return s, "Watered the crops.", nil
}

func TreatPests(state GameState) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	if !state.FieldPests {
		return state, "", fmt.Errorf("no pests: %w", ErrNothingToDo)
	}
	s := cloneState(state)
	if err := spendMoney(&s, economy.PestTreatmentCost); err != nil {
		return state, "", err
	}
	s.FieldPests = false
	return s, "Treated the fields. Pests eliminated.", nil
}

// HarvestCrop reaps a ready field. Hay raises a keep-or-sell prompt; cash
// crops sell immediately.
func HarvestCrop(state GameState, rng *rand.Rand) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	if state.CropGrowth < 100 || state.ActiveCrop == "" {
		return state, "", fmt.Errorf("crops are not ready: %w", ErrNotReady)
	}
	detail := economy.Crops[economy.CropType(state.ActiveCrop)]
	s := cloneState(state)
	if err := spendEnergy(&s, economy.EnergyHarvestCrop); err != nil {
		return state, "", err
	}
	yield := 20 + rng.Intn(10)
	if economy.CropType(state.ActiveCrop) == economy.CropHay {
		ev := buildHayHarvestEvent(yield)
		s.ActiveEvent = &ev
		return s, fmt.Sprintf("Harvested %d bales of hay. Decide what to do with them.", yield), nil
	}
	value := yield * detail.SellPrice
	s.Money += value
	s.CropGrowth = 0
	s.ActiveCrop = ""
	s.Stats.TotalCropsHarvested++
	s.Stats.TotalMoneyEarned += value
	return s, fmt.Sprintf("Harvested and sold %s for $%d.", detail.Name, value), nil
}

// -- Flocks --

// BuyFlock adds animals to the existing flock of the given type, or starts a
// new one. The flock cap is never exceeded; the purchase shrinks to fit.
func BuyFlock(state GameState, kind economy.FlockType, quantity int) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	detail, ok := economy.Flocks[kind]
	if !ok {
		return state, "", fmt.Errorf("flock type %q: %w", kind, ErrUnknownTarget)
	}
	if quantity < 1 {
		quantity = 1
	}
	s := cloneState(state)
	for i := range s.Flocks {
		f := &s.Flocks[i]
		if f.Type != kind {
			continue
		}
		toAdd := quantity
		if space := f.MaxCount - f.Count; toAdd > space {
			toAdd = space
		}
		if toAdd == 0 {
			return state, "", fmt.Errorf("%s flock at %d: %w", detail.Name, f.MaxCount, ErrFlockFull)
		}
		if err := spendMoney(&s, detail.CostPerAnimal*toAdd); err != nil {
			return state, "", err
		}
		f.Count += toAdd
		s.Stats.TotalAnimalsPurchased += toAdd
		return s, fmt.Sprintf("Bought %d %s for $%d.", toAdd, detail.Plural, detail.CostPerAnimal*toAdd), nil
	}
	if quantity > detail.MaxFlockSize {
		quantity = detail.MaxFlockSize
	}
	if err := spendMoney(&s, detail.CostPerAnimal*quantity); err != nil {
		return state, "", err
	}
	s.Flocks = append(s.Flocks, Flock{
		ID:        uuid.NewString(),
		Type:      kind,
		Count:     quantity,
		MaxCount:  detail.MaxFlockSize,
		Health:    100,
		Happiness: 100,
		Hunger:    100,
	})
	s.Stats.TotalAnimalsPurchased += quantity
	return s, fmt.Sprintf("Started a new flock of %d %s.", quantity, detail.Plural), nil
}

func FeedFlock(state GameState, flockID string) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	idx := state.FindFlock(flockID)
	if idx < 0 {
		return state, "", fmt.Errorf("flock %q: %w", flockID, ErrUnknownTarget)
	}
	if state.Flocks[idx].FedToday {
		return state, "", fmt.Errorf("flock already fed: %w", ErrAlreadyDone)
	}
	detail := economy.Flocks[state.Flocks[idx].Type]
	needed := float64(state.Flocks[idx].Count) * detail.FeedPerAnimal
	if state.Feed < needed {
		return state, "", fmt.Errorf("need %.0f feed: %w", needed, ErrInsufficientFeed)
	}
	s := cloneState(state)
	if err := spendEnergy(&s, economy.EnergyFeedFlock); err != nil {
		return state, "", err
	}
	f := &s.Flocks[idx]
	s.Feed -= needed
	f.FedToday = true
	f.Hunger = 100
	f.Happiness = clampGauge(f.Happiness + 5)
	return s, fmt.Sprintf("Fed the %s.", detail.Plural), nil
}

// CollectFlock gathers accumulated production and adds it to inventory.
func CollectFlock(state GameState, flockID string) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	idx := state.FindFlock(flockID)
	if idx < 0 {
		return state, "", fmt.Errorf("flock %q: %w", flockID, ErrUnknownTarget)
	}
	if state.Flocks[idx].ProductionReady == 0 {
		return state, "", fmt.Errorf("nothing to collect: %w", ErrNotReady)
	}
	s := cloneState(state)
	if err := spendEnergy(&s, economy.EnergyCollectFlock); err != nil {
		return state, "", err
	}
	f := &s.Flocks[idx]
	detail := economy.Flocks[f.Type]
	amount := f.ProductionReady
	f.ProductionReady = 0
	switch detail.Product {
	case "egg":
		s.Eggs += amount
	case "milk":
		s.Milk += amount
	case "wool":
		s.Wool += amount
	default:
		// Meat flocks sell on collection.
		s.Money += amount * detail.ProductValue
		s.Stats.TotalMoneyEarned += amount * detail.ProductValue
	}
	return s, fmt.Sprintf("Collected %d %s from the %s.", amount, detail.Product, detail.Plural), nil
}

// -- Horses --

func BuyHorse(state GameState, breed Breed, bio string, rng *rand.Rand) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	s := cloneState(state)
	if err := spendMoney(&s, economy.HorseBaseCost); err != nil {
		return state, "", err
	}
	if bio == "" {
		bio = fmt.Sprintf("A strong %s ready for work.", breed)
	}
	horse := Horse{
		ID:        uuid.NewString(),
		Name:      fmt.Sprintf("Steed %d", rng.Intn(100)),
		Breed:     breed,
		AgeMonths: 24,
		Health:    100,
		Hunger:    20,
		Happiness: 50,
		Stamina:   100,
		Level:     1,
		Value:     economy.HorseBaseCost,
		Bio:       bio,
	}
	s.Horses = append(s.Horses, horse)
	s.Stats.TotalAnimalsPurchased++
	s.Stats.MaxHorsesOwned = maxInt(s.Stats.MaxHorsesOwned, len(s.Horses))
	return s, fmt.Sprintf("Purchased a %s (unnamed)! Train it to unlock its true potential.", breed), nil
}

func FeedHorse(state GameState, horseID string) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	idx := state.FindHorse(horseID)
	if idx < 0 {
		return state, "", fmt.Errorf("horse %q: %w", horseID, ErrUnknownTarget)
	}
	if state.Feed < 1 {
		return state, "", fmt.Errorf("no feed left: %w", ErrInsufficientFeed)
	}
	s := cloneState(state)
	if err := spendEnergy(&s, economy.EnergyFeedHorse); err != nil {
		return state, "", err
	}
	h := &s.Horses[idx]
	s.Feed--
	h.Hunger = clampGauge(h.Hunger - 30)
	h.Health = clampGauge(h.Health + 5)
	h.Experience++
	return s, fmt.Sprintf("Fed %s.", h.Name), nil
}

func GroomHorse(state GameState, horseID string) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	idx := state.FindHorse(horseID)
	if idx < 0 {
		return state, "", fmt.Errorf("horse %q: %w", horseID, ErrUnknownTarget)
	}
	s := cloneState(state)
	if err := spendEnergy(&s, economy.EnergyGroomHorse); err != nil {
		return state, "", err
	}
	h := &s.Horses[idx]
	h.Happiness = clampGauge(h.Happiness + 15)
	h.Stamina = maxInt(0, h.Stamina-5)
	h.Experience += 2
	return s, fmt.Sprintf("Groomed %s. It looks shiny!", h.Name), nil
}

// TrainHorse grants XP scaled by mood and health and handles level-ups.
func TrainHorse(state GameState, horseID string, rng *rand.Rand) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	idx := state.FindHorse(horseID)
	if idx < 0 {
		return state, "", fmt.Errorf("horse %q: %w", horseID, ErrUnknownTarget)
	}
	if state.Horses[idx].Stamina < 20 {
		return state, "", fmt.Errorf("%s is too tired to train: %w", state.Horses[idx].Name, ErrNotReady)
	}
	s := cloneState(state)
	if err := spendEnergy(&s, economy.EnergyTrainHorse); err != nil {
		return state, "", err
	}
	h := &s.Horses[idx]

	moodMult := 1 + float64(h.Happiness)/200
	healthMult := 1.0
	if h.Health < 50 {
		healthMult = 0.5
	}
	gain := int(15*moodMult*healthMult) + rng.Intn(5)
	h.Experience += gain

	leveled := false
	if threshold := HorseNextThreshold(h.Level); threshold >= 0 && h.Experience >= threshold {
		h.Level++
		h.Value += 500
		leveled = true
	}
	h.Stamina = maxInt(0, h.Stamina-20)
	h.Hunger = clampGauge(h.Hunger + 10)
	if leveled {
		h.Happiness = 100
		return s, fmt.Sprintf("[LEVEL UP] %s reached Level %d! Value increased massively.", h.Name, h.Level), nil
	}
	h.Happiness = maxInt(0, h.Happiness-5)
	return s, fmt.Sprintf("Training complete. %s gained %d experience.", h.Name, gain), nil
}

// NameHorse registers a real name for an unnamed horse once it has proven
// itself in training.
func NameHorse(state GameState, horseID, name string) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	idx := state.FindHorse(horseID)
	if idx < 0 {
		return state, "", fmt.Errorf("horse %q: %w", horseID, ErrUnknownTarget)
	}
	if state.Horses[idx].Level < economy.HorseNamingLevel {
		return state, "", fmt.Errorf("reach level %d before naming: %w", economy.HorseNamingLevel, ErrNotReady)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return state, "", fmt.Errorf("empty name: %w", ErrUnknownTarget)
	}
	s := cloneState(state)
	old := s.Horses[idx].Name
	s.Horses[idx].Name = name
	s.Horses[idx].IsNamed = true
	return s, fmt.Sprintf("[NAMED] %s has been officially registered as '%s'!", old, name), nil
}

// -- Farm --

// ExpandFarm moves the plot grid to the next tier if the player level and
// resources allow it.
func ExpandFarm(state GameState) (GameState, string, error) {
	if err := guardEvent(state); err != nil {
		return state, "", err
	}
	current := -1
	for i, t := range economy.ExpansionTiers {
		if t.Rows == state.FarmRows && t.Cols == state.FarmCols {
			current = i
			break
		}
	}
	if current < 0 {
		return state, "", fmt.Errorf("unrecognized farm size %dx%d: %w", state.FarmRows, state.FarmCols, ErrInvalidState)
	}
	if current == len(economy.ExpansionTiers)-1 {
		return state, "", fmt.Errorf("farm is already at maximum size: %w", ErrNotReady)
	}
	tier := economy.ExpansionTiers[current+1]
	if state.PlayerLevel < tier.Level {
		return state, "", fmt.Errorf("level %d required: %w", tier.Level, ErrNotReady)
	}
	s := cloneState(state)
	if err := spendMoney(&s, tier.CoinCost); err != nil {
		return state, "", err
	}
	if err := spendEnergy(&s, tier.EnergyCost); err != nil {
		return state, "", err
	}
	s.FarmRows = tier.Rows
	s.FarmCols = tier.Cols
	return s, fmt.Sprintf("Expanded farm to %dx%d (%d plots).", tier.Rows, tier.Cols, tier.Rows*tier.Cols), nil
}
