package game

import (
	"encoding/json"
	"errors"
	"testing"

	"homestead/internal/economy"
)

func TestResolveEventRequiresPending(t *testing.T) {
	state := NewGameState("Quiet Farm")
	if _, err := ResolveEvent(state, 0); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

func TestResolveEventRejectsBadChoice(t *testing.T) {
	state := NewGameState("Choosy Farm")
	ev, ok := BuildEvent("donation_4h", 0)
	if !ok {
		t.Fatal("donation_4h missing from catalog")
	}
	state.ActiveEvent = &ev

	for _, choice := range []int{-1, len(ev.Options)} {
		if _, err := ResolveEvent(state, choice); !errors.Is(err, ErrInvalidChoice) {
			t.Fatalf("choice %d: err = %v, want ErrInvalidChoice", choice, err)
		}
	}
}

func TestResolveEventAppliesOption(t *testing.T) {
	state := NewGameState("Generous Farm")
	state.Horses = []Horse{{ID: "h1", Name: "Biscuit", Happiness: 50, Health: 100, Level: 1}}
	ev, _ := BuildEvent("donation_4h", 0)
	state.ActiveEvent = &ev

	next, err := ResolveEvent(state, 0)
	if err != nil {
		t.Fatalf("ResolveEvent: %v", err)
	}
	if next.Money != state.Money-50 {
		t.Fatalf("money = %d, want %d", next.Money, state.Money-50)
	}
	if next.Horses[0].Happiness != 60 {
		t.Fatalf("happiness = %d, want 60", next.Horses[0].Happiness)
	}
	if next.ActiveEvent != nil {
		t.Fatal("event not cleared")
	}
	// Declining must leave the state alone apart from the log.
	state.ActiveEvent = &ev
	declined, err := ResolveEvent(state, 1)
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if declined.Money != state.Money || declined.Horses[0].Happiness != 50 {
		t.Fatal("decline changed resources")
	}
}

func TestVetEventLevelsHorses(t *testing.T) {
	state := NewGameState("Vet Farm")
	state.Horses = []Horse{
		{ID: "h1", Health: 40, Hunger: 90, Happiness: 10, Stamina: 20, Level: 1, Value: 500},
		{ID: "h2", Health: 100, Hunger: 0, Happiness: 100, Stamina: 100, Level: economy.MaxHorseLevel, Value: 3000},
	}
	ev, _ := BuildEvent("traveling_vet", 0)
	state.ActiveEvent = &ev

	next, err := ResolveEvent(state, 0)
	if err != nil {
		t.Fatalf("ResolveEvent: %v", err)
	}
	h1 := next.Horses[0]
	if h1.Health != 100 || h1.Hunger != 0 || h1.Happiness != 100 || h1.Stamina != 100 {
		t.Fatalf("h1 not restored: %+v", h1)
	}
	if h1.Level != 2 || h1.Value != 1000 {
		t.Fatalf("h1 level=%d value=%d, want 2/1000", h1.Level, h1.Value)
	}
	// Capped horses are restored but not leveled.
	if next.Horses[1].Level != economy.MaxHorseLevel || next.Horses[1].Value != 3000 {
		t.Fatalf("h2 leveled past cap: %+v", next.Horses[1])
	}
}

func TestRehydrateEventRestoresApply(t *testing.T) {
	state := NewGameState("Persisted Farm")
	ev, _ := BuildEvent("bumper_crop", 0)
	state.ActiveEvent = &ev

	raw, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var loaded GameState
	if err := json.Unmarshal(raw, &loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if loaded.ActiveEvent.Options[0].Apply != nil {
		t.Fatal("Apply survived JSON, expected it dropped")
	}
	loaded.ActiveEvent = RehydrateEvent(loaded.ActiveEvent)
	if loaded.ActiveEvent == nil || loaded.ActiveEvent.Options[0].Apply == nil {
		t.Fatal("rehydration did not restore Apply")
	}

	next, err := ResolveEvent(loaded, 0)
	if err != nil {
		t.Fatalf("ResolveEvent after rehydrate: %v", err)
	}
	if next.Feed != state.Feed+50 {
		t.Fatalf("feed = %.0f, want %.0f", next.Feed, state.Feed+50)
	}
}

func TestRehydrateEventDropsUnknown(t *testing.T) {
	if got := RehydrateEvent(&FarmEvent{ID: "retired_event"}); got != nil {
		t.Fatalf("unknown event rehydrated: %+v", got)
	}
	if got := RehydrateEvent(nil); got != nil {
		t.Fatal("nil event rehydrated")
	}
}

func TestHayHarvestEventCarriesYield(t *testing.T) {
	state := NewGameState("Hay Farm")
	state.ActiveCrop = "hay"
	state.CropGrowth = 100
	ev := buildHayHarvestEvent(24)
	state.ActiveEvent = &ev

	kept, err := ResolveEvent(state, 0)
	if err != nil {
		t.Fatalf("keep: %v", err)
	}
	if kept.Feed != state.Feed+24 {
		t.Fatalf("feed = %.0f, want %.0f", kept.Feed, state.Feed+24)
	}
	if kept.CropGrowth != 0 || kept.ActiveCrop != "" {
		t.Fatal("field not cleared after keeping hay")
	}
	if kept.Stats.TotalCropsHarvested != 1 {
		t.Fatalf("harvest counter = %d, want 1", kept.Stats.TotalCropsHarvested)
	}

	state.ActiveEvent = &ev
	sold, err := ResolveEvent(state, 1)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	want := state.Money + 24*economy.Crops[economy.CropHay].SellPrice
	if sold.Money != want {
		t.Fatalf("money = %d, want %d", sold.Money, want)
	}

	// The yield payload must survive a JSON round trip.
	re := RehydrateEvent(&FarmEvent{ID: "harvest_hay", Payload: 24})
	if re == nil || re.Payload != 24 {
		t.Fatalf("payload lost: %+v", re)
	}
}

func TestRandomEventComesFromCatalog(t *testing.T) {
	seen := map[string]bool{}
	for seed := int64(0); seed < 50; seed++ {
		ev := RandomEvent(testRand(seed))
		if ev.ID == "harvest_hay" {
			t.Fatal("harvest prompt raised by the random roll")
		}
		if _, ok := BuildEvent(ev.ID, 0); !ok {
			t.Fatalf("unknown random event %q", ev.ID)
		}
		seen[ev.ID] = true
	}
	if len(seen) < 3 {
		t.Fatalf("only %d distinct events over 50 seeds", len(seen))
	}
}
