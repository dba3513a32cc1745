package game

import (
	"fmt"
	"math/rand"

	"homestead/internal/economy"
)

// AdvanceDay resolves one simulated day. It is a pure transform: the input
// snapshot is never mutated, and all randomness comes from the injected rng,
// so a fixed seed reproduces the exact same next state. The narrative
// augmentation (daily summary, news ticker) is deliberately not part of this
// function; the service layer applies it best-effort afterwards.
//
// Step order matters: soil moisture is adjusted from the weather the day was
// played under before the new day's weather is stored, escapes read the
// already-decayed fence quality, and horse penalties read the decayed stable
// cleanliness.
func AdvanceDay(state GameState, rng *rand.Rand) (GameState, []LogEntry, *FarmEvent, error) {
	if state.ActiveEvent != nil {
		return state, nil, nil, fmt.Errorf("cannot end the day: %w", ErrEventPending)
	}
	if err := state.Validate(); err != nil {
		return state, nil, nil, err
	}

	next := cloneState(state)
	day := state.Day + 1
	var logs []LogEntry
	log := func(message, kind string) {
		logs = appendLog(logs, &next.LogSeq, day, message, kind)
	}

	// 1. Weather roll for the new day.
	next.Weather = WeatherKinds[rng.Intn(len(WeatherKinds))]

	// Stable and fence wear, scaled by how much stock is on the ranch.
	cleanDecay := rng.Intn(10) + len(state.Horses)*5
	next.Cleanliness = clampGauge(state.Cleanliness - cleanDecay)

	livestockCount := len(state.Horses) + state.DairyCows + state.BeefCows + state.Goats + state.Pigs
	next.Infrastructure = clampGauge(state.Infrastructure - (2 + livestockCount/2))

	// 2. Soil and crop update, driven by the weather the day was played under.
	switch state.Weather {
	case "Rainy", "Stormy":
		next.FieldWater = clampGauge(state.FieldWater + economy.WeatherRainGain)
	case "Sunny":
		next.FieldWater = clampGauge(state.FieldWater - economy.WeatherSunLoss)
	default:
		next.FieldWater = clampGauge(state.FieldWater - economy.WeatherDryLoss)
	}

	if !next.FieldPests && state.CropGrowth > 0 {
		if rng.Float64() < economy.PestChance {
			next.FieldPests = true
		}
	}

	if state.CropGrowth > 0 && state.CropGrowth < 100 {
		growth := 25 + rng.Intn(15)
		if next.FieldWater < economy.DroughtWaterThreshold {
			growth = int(float64(growth) * economy.DroughtGrowthFactor)
		}
		if next.FieldPests {
			growth = 0
		}
		next.CropGrowth = clampGauge(state.CropGrowth + growth)
	}

	if next.FieldWater < 10 && state.CropGrowth > 0 {
		log("Crops are withering from drought!", LogWarning)
	}
	if next.FieldPests {
		log("Pests are attacking your crops!", LogDanger)
	}
	if next.CropGrowth == 100 && state.CropGrowth < 100 {
		name := "Crops"
		if d, ok := economy.Crops[economy.CropType(state.ActiveCrop)]; ok {
			name = d.Name
		}
		log(fmt.Sprintf("Your %s are ready to harvest!", name), LogSuccess)
	}

	// 3. Feed consumption across grouped livestock.
	chickenRate := economy.FeedChickenCaged
	if state.IsFreeRange {
		chickenRate = economy.FeedChickenFreeRange
	}
	feedNeeded := float64(state.DairyCows)*economy.FeedCowDairy +
		float64(state.BeefCows)*economy.FeedCowBeef +
		float64(state.Goats)*economy.FeedGoat +
		float64(state.Pigs)*economy.FeedPig +
		float64(state.Chickens)*chickenRate
	next.Feed = state.Feed - feedNeeded
	if next.Feed < 0 {
		next.Feed = 0
		log("Ran out of feed! Your livestock is hungry.", LogDanger)
	}

	// 4. Escapes through neglected fencing.
	if next.Infrastructure < economy.EscapeInfraThreshold {
		if state.Chickens > 0 && rng.Float64() < economy.EscapeChanceChicken {
			loss := rng.Intn(economy.EscapeMaxChickens) + 1
			next.Chickens = maxInt(0, state.Chickens-loss)
			log(fmt.Sprintf("%d chickens escaped through broken fences!", loss), LogDanger)
		}
		if state.DairyCows+state.BeefCows > 0 && rng.Float64() < economy.EscapeChanceCattle {
			if state.BeefCows > 0 {
				next.BeefCows = state.BeefCows - 1
				log("A beef steer escaped!", LogDanger)
			} else {
				next.DairyCows = state.DairyCows - 1
				log("A dairy cow wandered off!", LogDanger)
			}
		}
		if state.Goats > 0 && rng.Float64() < economy.EscapeChanceGoat {
			next.Goats = state.Goats - 1
			log("A goat jumped the fence and ran away!", LogDanger)
		}
		if state.Pigs > 0 && rng.Float64() < economy.EscapeChancePig {
			next.Pigs = state.Pigs - 1
			log("A pig escaped into the woods!", LogDanger)
		}
	}

	// 5. Flock welfare decay and production readiness.
	for i := range next.Flocks {
		f := &next.Flocks[i]
		detail := economy.Flocks[f.Type]
		if !f.FedToday {
			f.Hunger = clampGauge(f.Hunger - 20)
			f.Happiness = clampGauge(f.Happiness - 10)
		}
		if f.Hunger < 30 {
			f.Happiness = clampGauge(f.Happiness - 10)
		}
		if f.Hunger == 0 {
			f.Health = clampGauge(f.Health - 10)
			log(fmt.Sprintf("Your %s are starving!", detail.Plural), LogDanger)
		}
		f.DaysSinceProduced++
		if f.FedToday && f.DaysSinceProduced >= detail.ProductionDays {
			f.ProductionReady += f.Count
			f.DaysSinceProduced = 0
			log(fmt.Sprintf("Your %s have %s ready to collect.", detail.Plural, detail.Product), LogInfo)
		}
	}

	// 6. Per-horse decay and revaluation.
	for i := range next.Horses {
		h := &next.Horses[i]
		h.Hunger = clampGauge(h.Hunger + economy.HorseHungerPerDay)
		h.Stamina = 100
		xpChange := 0
		if h.Hunger >= 80 {
			h.Health -= 10
			xpChange -= 10
		}
		if next.Cleanliness < 30 {
			h.Health -= 5
			h.Happiness -= 10
			xpChange -= 5
		}
		if h.Happiness < 20 {
			xpChange -= 5
		}
		h.Health = clampGauge(h.Health)
		h.Happiness = clampGauge(h.Happiness)
		h.Experience = maxInt(0, h.Experience+xpChange)
		h.Value = HorseValuation(economy.HorseBaseCost, h.Experience, h.Level, h.Health)
		h.AgeMonths++
	}

	// 7. Market fluctuation, bounded per species.
	next.BeefPrice = fluctuate(state.BeefPrice, economy.BeefBand, rng)
	next.PigPrice = fluctuate(state.PigPrice, economy.PigBand, rng)

	// 8. Upkeep is never blockable; money may go negative here.
	next.Money = state.Money - len(state.Horses)*economy.DailyUpkeepPerHorse

	// 9. Achievement sweep against the post-economic-update state.
	for _, id := range EvaluateAchievements(next) {
		next.UnlockedAchievements = append(next.UnlockedAchievements, id)
		log(fmt.Sprintf("ACHIEVEMENT UNLOCKED: %s", AchievementTitle(id)), LogSuccess)
	}

	// 10. Reset daily flags.
	next.Care = CareFlags{}
	for i := range next.Flocks {
		next.Flocks[i].FedToday = false
	}

	next.Day = day
	next.Energy = next.MaxEnergy
	next.Stats.MaxHorsesOwned = maxInt(state.Stats.MaxHorsesOwned, len(next.Horses))

	// 11. Random event roll. The precondition guarantees nothing was pending.
	var triggered *FarmEvent
	if rng.Float64() < economy.EventChance {
		ev := RandomEvent(rng)
		triggered = &ev
		next.ActiveEvent = triggered
	}

	next.Logs = append(next.Logs, logs...)
	if len(next.Logs) > economy.LogRetention {
		next.Logs = next.Logs[len(next.Logs)-economy.LogRetention:]
	}

	return next, logs, triggered, nil
}

func fluctuate(price int, band economy.PriceBand, rng *rand.Rand) int {
	delta := rng.Intn(2*band.Swing) - band.Swing
	return clampInt(price+delta, band.Min, band.Max)
}

// cloneState deep-copies the slices so the caller's snapshot stays intact if
// the tick fails part way or the caller keeps the old state around.
func cloneState(s GameState) GameState {
	next := s
	next.Equipment = append([]economy.EquipmentID(nil), s.Equipment...)
	next.Flocks = append([]Flock(nil), s.Flocks...)
	next.Horses = append([]Horse(nil), s.Horses...)
	next.UnlockedAchievements = append([]string(nil), s.UnlockedAchievements...)
	next.Logs = append([]LogEntry(nil), s.Logs...)
	next.News = append([]string(nil), s.News...)
	return next
}
