package game

import (
	"fmt"
	"math/rand"

	"homestead/internal/economy"
)

// Event catalog. Each entry is a data record whose option effects are pure
// functions of the state; nothing here captures mutable variables. Builders
// take an integer payload so parameterized events (the hay harvest prompt)
// can be reconstructed from their persisted form.

type eventBuilder func(payload int) FarmEvent

var eventCatalog = map[string]eventBuilder{
	"donation_4h":   buildDonationEvent,
	"zoning_vote":   buildZoningEvent,
	"storm_damage":  buildStormEvent,
	"bumper_crop":   buildBumperCropEvent,
	"traveling_vet": buildVetEvent,
	"harvest_hay":   buildHayHarvestEvent,
}

// Events eligible for the daily random roll, in stable order.
var randomEventIDs = []string{"donation_4h", "zoning_vote", "storm_damage", "bumper_crop", "traveling_vet"}

// RandomEvent picks one event definition uniformly at random.
func RandomEvent(rng *rand.Rand) FarmEvent {
	id := randomEventIDs[rng.Intn(len(randomEventIDs))]
	return eventCatalog[id](0)
}

// BuildEvent constructs a catalog event by id. Unknown ids return false.
func BuildEvent(id string, payload int) (FarmEvent, bool) {
	b, ok := eventCatalog[id]
	if !ok {
		return FarmEvent{}, false
	}
	return b(payload), true
}

// RehydrateEvent restores the Apply closures on an event that went through a
// JSON round trip. Events with unknown ids are dropped rather than left
// unresolvable.
func RehydrateEvent(ev *FarmEvent) *FarmEvent {
	if ev == nil {
		return nil
	}
	built, ok := BuildEvent(ev.ID, ev.Payload)
	if !ok {
		return nil
	}
	return &built
}

// ResolveEvent applies the chosen option of the pending event and clears it.
// The state is returned unchanged on error.
func ResolveEvent(state GameState, choice int) (GameState, error) {
	if state.ActiveEvent == nil {
		return state, fmt.Errorf("no event to resolve: %w", ErrInvalidState)
	}
	ev := state.ActiveEvent
	if choice < 0 || choice >= len(ev.Options) {
		return state, fmt.Errorf("choice %d of %d options: %w", choice, len(ev.Options), ErrInvalidChoice)
	}
	opt := ev.Options[choice]
	next := cloneState(state)
	if opt.Apply != nil {
		next = opt.Apply(next)
	}
	next.ActiveEvent = nil
	next.Logs = appendLog(next.Logs, &next.LogSeq, next.Day, opt.LogMessage, LogInfo)
	return next, nil
}

func buildDonationEvent(int) FarmEvent {
	return FarmEvent{
		ID:          "donation_4h",
		Title:       "Local 4-H Club Donation",
		Description: "The local 4-H club is raising money for their upcoming county fair showcase. They ask for a small contribution.",
		Options: []EventOption{
			{
				Label:      "Donate $50",
				LogMessage: "Donated to the 4-H club. The community appreciates your support.",
				Apply: func(s GameState) GameState {
					s.Money -= 50
					for i := range s.Horses {
						s.Horses[i].Happiness = clampGauge(s.Horses[i].Happiness + 10)
					}
					return s
				},
			},
			{Label: "Politely Decline", LogMessage: "Declined the donation request."},
		},
	}
}

func buildZoningEvent(int) FarmEvent {
	return FarmEvent{
		ID:          "zoning_vote",
		Title:       "Town Council Vote: Zoning",
		Description: "The council is voting on a new zoning law that would increase property taxes but improve road maintenance.",
		Options: []EventOption{
			{
				Label:      "Support (+Infra, -$$)",
				LogMessage: "Supported the new zoning laws. Taxes increased, but fences are sturdier.",
				Apply: func(s GameState) GameState {
					s.Money -= 100
					s.Infrastructure = clampGauge(s.Infrastructure + 20)
					return s
				},
			},
			{Label: "Oppose", LogMessage: "Opposed the zoning laws. Things stay the same."},
		},
	}
}

func buildStormEvent(int) FarmEvent {
	return FarmEvent{
		ID:          "storm_damage",
		Title:       "Storm Damage",
		Description: "A heavy storm rolled through last night. A section of the stable roof is leaking.",
		Options: []EventOption{
			{
				Label:      "Repair Immediately ($100)",
				LogMessage: "Fixed the roof immediately.",
				Apply: func(s GameState) GameState {
					s.Money -= 100
					s.Cleanliness = clampGauge(s.Cleanliness + 10)
					return s
				},
			},
			{
				Label:      "Patch it yourself (-50 Energy)",
				LogMessage: "Spent the morning patching the roof.",
				Apply: func(s GameState) GameState {
					s.Energy = maxInt(0, s.Energy-50)
					return s
				},
			},
			{
				Label:      "Ignore it",
				LogMessage: "Ignored the leak. The stables are a mess.",
				Apply: func(s GameState) GameState {
					s.Cleanliness = clampGauge(s.Cleanliness - 30)
					return s
				},
			},
		},
	}
}

func buildBumperCropEvent(int) FarmEvent {
	return FarmEvent{
		ID:          "bumper_crop",
		Title:       "Bumper Crop",
		Description: "A neighbor has an excess of hay and offers to sell it cheap.",
		Options: []EventOption{
			{
				Label:      "Buy 50 bales ($100)",
				LogMessage: "Bought cheap hay from neighbor.",
				Apply: func(s GameState) GameState {
					s.Money -= 100
					s.Feed += 50
					return s
				},
			},
			{Label: "No thanks", LogMessage: "Passed on the cheap hay."},
		},
	}
}

func buildVetEvent(int) FarmEvent {
	return FarmEvent{
		ID:          "traveling_vet",
		Title:       "Traveling Vet",
		Description: "A specialist veterinarian is passing through town and offers a discount checkup for the herd.",
		Options: []EventOption{
			{
				Label:      "Full Checkup ($150)",
				LogMessage: "The vet treated the herd. All horses fully restored and gained a level!",
				Apply: func(s GameState) GameState {
					s.Money -= 150
					for i := range s.Horses {
						h := &s.Horses[i]
						h.Health = 100
						h.Hunger = 0
						h.Happiness = 100
						h.Stamina = 100
						if h.Level < economy.MaxHorseLevel {
							h.Level++
							h.Value += 500
						}
					}
					return s
				},
			},
			{Label: "Pass", LogMessage: "Skipped the vet visit."},
		},
	}
}

// buildHayHarvestEvent prompts whether a hay yield (payload, in bales) is
// kept as feed or sold at market. It is raised by the harvest action, not by
// the random roll.
func buildHayHarvestEvent(yield int) FarmEvent {
	value := yield * economy.Crops[economy.CropHay].SellPrice
	return FarmEvent{
		ID:          "harvest_hay",
		Payload:     yield,
		Title:       "Harvest Complete",
		Description: fmt.Sprintf("You've harvested %d bales of Hay.", yield),
		Options: []EventOption{
			{
				Label:      fmt.Sprintf("Keep for Feed (+%d bales)", yield),
				LogMessage: fmt.Sprintf("Stored %d bales of hay.", yield),
				Apply: func(s GameState) GameState {
					s.Feed += float64(yield)
					s.CropGrowth = 0
					s.ActiveCrop = ""
					s.Stats.TotalCropsHarvested++
					return s
				},
			},
			{
				Label:      fmt.Sprintf("Sell at Market (+$%d)", value),
				LogMessage: fmt.Sprintf("Sold the harvest for $%d.", value),
				Apply: func(s GameState) GameState {
					s.Money += value
					s.CropGrowth = 0
					s.ActiveCrop = ""
					s.Stats.TotalCropsHarvested++
					s.Stats.TotalMoneyEarned += value
					return s
				},
			},
		},
	}
}
