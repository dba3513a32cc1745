package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homestead/internal/economy"
	"homestead/internal/narrative"
)

// Service owns all game state persistence. Every mutation loads the player's
// snapshot under a row lock, applies a pure transform, and writes the result
// back in the same transaction, so concurrent requests for one player
// serialize at the database.
type Service struct {
	db   *pgxpool.Pool
	log  *slog.Logger
	narr narrative.Generator

	// narrTimeout bounds the post-commit narrative call.
	narrTimeout time.Duration

	mu   sync.Mutex
	rand *rand.Rand
}

func NewService(db *pgxpool.Pool, logger *slog.Logger, narr narrative.Generator, narrTimeout time.Duration) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if narr == nil {
		narr = narrative.Fallback{}
	}
	if narrTimeout <= 0 {
		narrTimeout = 10 * time.Second
	}
	return &Service{
		db:          db,
		log:         logger,
		narr:        narr,
		narrTimeout: narrTimeout,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed replaces the internal randomness source. Tests use it for
// reproducible days.
func (s *Service) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rand = rand.New(rand.NewSource(seed))
}

// ActionParams carries the optional arguments of a named action. Unused
// fields are left zero.
type ActionParams struct {
	Equipment string `json:"equipment,omitempty"`
	Crop      string `json:"crop,omitempty"`
	FlockType string `json:"flock_type,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
	TargetID  string `json:"target_id,omitempty"`
	Breed     string `json:"breed,omitempty"`
	Name      string `json:"name,omitempty"`

	// bio is resolved server side before dispatch; it never comes off the
	// wire.
	bio string
}

// DayResult is the outcome of ending a day.
type DayResult struct {
	State     GameState  `json:"state"`
	Logs      []LogEntry `json:"logs"`
	NewEvent  *FarmEvent `json:"new_event,omitempty"`
	Narrative string     `json:"narrative,omitempty"`
}

// LeaderboardRow ranks farms by cash on hand.
type LeaderboardRow struct {
	PlayerID string `json:"player_id"`
	FarmName string `json:"farm_name"`
	Money    int    `json:"money"`
	Day      int    `json:"day"`
}

// EnsurePlayer creates the day-one snapshot for a new player id, or returns
// the existing one. Creation may consult the narrative generator for a farm
// name when none is given.
func (s *Service) EnsurePlayer(ctx context.Context, playerID, farmName string) (GameState, error) {
	if state, err := s.State(ctx, playerID); err == nil {
		return state, nil
	} else if !errors.Is(err, ErrPlayerNotFound) {
		return GameState{}, err
	}

	farmName = strings.TrimSpace(farmName)
	if farmName == "" {
		nctx, cancel := context.WithTimeout(ctx, s.narrTimeout)
		farmName = s.narr.FarmName(nctx)
		cancel()
	}
	if err := validateFarmName(farmName); err != nil {
		return GameState{}, err
	}

	state := NewGameState(farmName)
	raw, err := json.Marshal(state)
	if err != nil {
		return GameState{}, fmt.Errorf("marshal state: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO farm_states (player_id, farm_name, day, money, state, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (player_id) DO NOTHING
	`, playerID, farmName, state.Day, state.Money, raw)
	if err != nil {
		return GameState{}, fmt.Errorf("insert player: %w", err)
	}
	return s.State(ctx, playerID)
}

// State loads a player's snapshot without locking it.
func (s *Service) State(ctx context.Context, playerID string) (GameState, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, `SELECT state FROM farm_states WHERE player_id = $1`, playerID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return GameState{}, ErrPlayerNotFound
	}
	if err != nil {
		return GameState{}, fmt.Errorf("load state: %w", err)
	}
	return decodeState(raw)
}

// EndDay advances the player's farm by one day. The tick runs inside the row
// lock; the narrative augmentation runs after commit and only ever appends a
// flavor log and refreshes the news ticker.
func (s *Service) EndDay(ctx context.Context, playerID string) (DayResult, error) {
	var result DayResult
	err := s.withState(ctx, playerID, func(state GameState) (GameState, error) {
		s.mu.Lock()
		next, logs, triggered, err := AdvanceDay(state, s.rand)
		s.mu.Unlock()
		if err != nil {
			return state, err
		}
		result = DayResult{State: next, Logs: logs, NewEvent: triggered}
		return next, nil
	})
	if err != nil {
		return DayResult{}, err
	}

	s.augmentDay(ctx, playerID, &result)
	return result, nil
}

// augmentDay asks the narrative generator for a daily summary and fresh
// headlines. A failing generator is treated as unavailable: the canned text
// takes its place, so the day always gets a summary.
func (s *Service) augmentDay(ctx context.Context, playerID string, result *DayResult) {
	summary, headlines := s.narrateDay(ctx, playerID, narrative.DayFacts{
		Day:      result.State.Day,
		Weather:  result.State.Weather,
		Money:    result.State.Money,
		Horses:   len(result.State.Horses),
		Messages: logMessages(result.Logs),
	})

	err := s.withState(ctx, playerID, func(state GameState) (GameState, error) {
		// The day may have moved on while we waited; never touch a newer
		// snapshot.
		if state.Day != result.State.Day {
			return state, nil
		}
		next := cloneState(state)
		next.Logs = appendLog(next.Logs, &next.LogSeq, next.Day, summary, LogFlavor)
		if len(headlines) > 0 {
			next.News = headlines
		}
		result.State = next
		result.Narrative = summary
		return next, nil
	})
	if err != nil {
		s.log.Warn("narrative write failed", "player_id", playerID, "error", err)
	}
}

// narrateDay produces the summary and headlines for a finished day, dropping
// to the canned generator on any error so the result is never empty.
func (s *Service) narrateDay(ctx context.Context, playerID string, facts narrative.DayFacts) (string, []string) {
	nctx, cancel := context.WithTimeout(ctx, s.narrTimeout)
	defer cancel()

	summary, err := s.narr.DailySummary(nctx, facts)
	if err != nil {
		s.log.Warn("narrative summary failed", "player_id", playerID, "error", err)
		summary, _ = narrative.Fallback{}.DailySummary(nctx, facts)
	}
	headlines, err := s.narr.Headlines(nctx, facts.Day)
	if err != nil {
		s.log.Warn("narrative headlines failed", "player_id", playerID, "error", err)
		headlines, _ = narrative.Fallback{}.Headlines(nctx, facts.Day)
	}
	return summary, headlines
}

// horseBio fetches flavor copy for a new horse. An error just means the
// stock bio is used.
func (s *Service) horseBio(ctx context.Context, breed Breed) string {
	nctx, cancel := context.WithTimeout(ctx, s.narrTimeout)
	defer cancel()
	bio, err := s.narr.HorseBio(nctx, string(breed))
	if err != nil {
		s.log.Warn("narrative horse bio failed", "breed", breed, "error", err)
		return ""
	}
	return bio
}

// ResolveEvent applies the player's choice on the pending event.
func (s *Service) ResolveEvent(ctx context.Context, playerID string, choice int) (GameState, error) {
	var out GameState
	err := s.withState(ctx, playerID, func(state GameState) (GameState, error) {
		next, err := ResolveEvent(state, choice)
		if err != nil {
			return state, err
		}
		out = next
		return next, nil
	})
	return out, err
}

// Act dispatches a named action against the locked snapshot. The returned
// message is the action's log line, already appended to the state's log.
func (s *Service) Act(ctx context.Context, playerID, action string, params ActionParams) (GameState, string, error) {
	var (
		out GameState
		msg string
	)
	if action == "buy_horse" {
		if strings.TrimSpace(params.Breed) == "" {
			s.mu.Lock()
			params.Breed = string(Breeds[s.rand.Intn(len(Breeds))])
			s.mu.Unlock()
		}
		params.bio = s.horseBio(ctx, Breed(params.Breed))
	}
	err := s.withState(ctx, playerID, func(state GameState) (GameState, error) {
		next, m, err := s.dispatch(state, action, params)
		if err != nil {
			return state, err
		}
		next.Logs = appendLog(next.Logs, &next.LogSeq, next.Day, m, LogInfo)
		out = next
		msg = m
		return next, nil
	})
	return out, msg, err
}

func (s *Service) dispatch(state GameState, action string, params ActionParams) (GameState, string, error) {
	s.mu.Lock()
	rng := s.rand
	defer s.mu.Unlock()

	switch action {
	case "buy_feed":
		return BuyFeed(state)
	case "buy_chickens":
		return BuyChickens(state)
	case "buy_dairy_cow":
		return BuyDairyCow(state)
	case "buy_beef_cow":
		return BuyBeefCow(state)
	case "buy_goat":
		return BuyGoat(state)
	case "buy_pig":
		return BuyPig(state)
	case "buy_equipment":
		return BuyEquipment(state, economy.EquipmentID(params.Equipment))
	case "sell_beef_cow":
		return SellBeefCow(state)
	case "sell_pig":
		return SellPig(state)
	case "sell_chicken":
		return SellChicken(state)
	case "sell_produce":
		return SellProduce(state)
	case "toggle_coop":
		return ToggleCoopMode(state)
	case "clean_stable":
		return CleanStable(state)
	case "repair_fences":
		return RepairFences(state)
	case "collect_eggs":
		return CollectEggs(state, rng)
	case "collect_manure":
		return CollectManure(state)
	case "milk_cows":
		return MilkCows(state, rng)
	case "milk_goats":
		return MilkGoats(state, rng)
	case "plant_crop":
		return PlantCrop(state, economy.CropType(params.Crop))
	case "water_crops":
		return WaterCrops(state)
	case "treat_pests":
		return TreatPests(state)
	case "harvest_crop":
		return HarvestCrop(state, rng)
	case "buy_flock":
		return BuyFlock(state, economy.FlockType(params.FlockType), params.Quantity)
	case "feed_flock":
		return FeedFlock(state, params.TargetID)
	case "collect_flock":
		return CollectFlock(state, params.TargetID)
	case "buy_horse":
		breed := Breed(params.Breed)
		if breed == "" {
			breed = Breeds[rng.Intn(len(Breeds))]
		}
		return BuyHorse(state, breed, params.bio, rng)
	case "feed_horse":
		return FeedHorse(state, params.TargetID)
	case "groom_horse":
		return GroomHorse(state, params.TargetID)
	case "train_horse":
		return TrainHorse(state, params.TargetID, rng)
	case "name_horse":
		return NameHorse(state, params.TargetID, params.Name)
	case "expand_farm":
		return ExpandFarm(state)
	default:
		return state, "", fmt.Errorf("action %q: %w", action, ErrUnknownTarget)
	}
}

// Leaderboard ranks all farms by money, richest first.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	rows, err := s.db.Query(ctx, `
		SELECT player_id, farm_name, money, day
		FROM farm_states
		ORDER BY money DESC, day DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	out := []LeaderboardRow{}
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.PlayerID, &r.FarmName, &r.Money, &r.Day); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// withState runs fn against the player's snapshot under SELECT ... FOR
// UPDATE and persists whatever fn returns. fn returning an error rolls the
// transaction back.
func (s *Service) withState(ctx context.Context, playerID string, fn func(GameState) (GameState, error)) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var raw []byte
	err = tx.QueryRow(ctx, `SELECT state FROM farm_states WHERE player_id = $1 FOR UPDATE`, playerID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrPlayerNotFound
	}
	if err != nil {
		return fmt.Errorf("lock state: %w", err)
	}
	state, err := decodeState(raw)
	if err != nil {
		return err
	}

	next, err := fn(state)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	_, err = tx.Exec(ctx, `
		UPDATE farm_states
		SET state = $2, farm_name = $3, day = $4, money = $5, updated_at = now()
		WHERE player_id = $1
	`, playerID, encoded, next.FarmName, next.Day, next.Money)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return tx.Commit(ctx)
}

func decodeState(raw []byte) (GameState, error) {
	var state GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return GameState{}, fmt.Errorf("decode state: %w", err)
	}
	state.ActiveEvent = RehydrateEvent(state.ActiveEvent)
	return state, nil
}

func logMessages(logs []LogEntry) []string {
	out := make([]string, 0, len(logs))
	for _, l := range logs {
		out = append(out, l.Message)
	}
	return out
}
