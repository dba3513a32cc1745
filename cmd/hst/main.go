package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	cl "homestead/internal/cli"
	"homestead/internal/config"
	"homestead/internal/game"
	"homestead/internal/syncq"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "hst",
		Short:        "Homestead CLI game client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newInitCmd(&apiBase),
		newLogoutCmd(),
		newStatusCmd(&apiBase),
		newEndDayCmd(&apiBase),
		newEventCmd(&apiBase),
		newBuyCmd(&apiBase),
		newSellCmd(&apiBase),
		newChoreCmd(&apiBase),
		newCropCmd(&apiBase),
		newHorseCmd(&apiBase),
		newFlockCmd(&apiBase),
		newExpandCmd(&apiBase),
		newLeaderboardCmd(&apiBase),
		newSyncCmd(&apiBase),
		newWatchCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func newInitCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init [farm name]",
		Short: "Start a new farm and save the session",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			farmName := strings.TrimSpace(strings.Join(args, " "))
			if farmName == "" {
				var err error
				farmName, err = promptOptional("Farm name (blank for a generated one)")
				if err != nil {
					return err
				}
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.CreatePlayer(ctx, uuid.NewString(), farmName)
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.Session{
				PlayerID: out.PlayerID,
				FarmName: out.State.FarmName,
			}); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Welcome to %s! Session saved.", out.State.FarmName))
			return renderState(out.State)
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printSuccess("Session cleared.")
			return nil
		},
	}
}

func newStatusCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   "Show the farm dashboard",
		Aliases: []string{"dash"},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("run `hst init` first: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			state, err := newClient(apiBase).State(ctx, sess.PlayerID)
			if err != nil {
				return err
			}
			return renderState(state)
		},
	}
}

func newEndDayCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the day and run the overnight simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("run `hst init` first: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			result, err := newClient(apiBase).EndDay(ctx, sess.PlayerID)
			if err != nil {
				return queueOnNetworkError(err, syncq.Command{
					Method: "POST",
					Path:   "/v1/day/end",
				})
			}
			return renderDayResult(result)
		},
	}
}

func newEventCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "event",
		Short: "Show and resolve the pending event",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("run `hst init` first: %w", err)
			}
			client := newClient(apiBase)
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			state, err := client.State(ctx, sess.PlayerID)
			if err != nil {
				return err
			}
			if state.ActiveEvent == nil {
				printInfo("No event pending.")
				return nil
			}
			renderEvent(state.ActiveEvent)
			choice, err := promptChoiceIndex("Choose", len(state.ActiveEvent.Options))
			if err != nil {
				return err
			}
			next, err := client.ResolveEvent(ctx, sess.PlayerID, choice)
			if err != nil {
				return err
			}
			printSuccess("Event resolved.")
			return renderState(next)
		},
	}
}

func newBuyCmd(apiBase *string) *cobra.Command {
	buy := &cobra.Command{
		Use:   "buy",
		Short: "Market purchases",
	}
	buy.AddCommand(
		actionCmd(apiBase, "feed", "Buy a unit of feed", "buy_feed", nil),
		actionCmd(apiBase, "chickens", "Buy a batch of chickens", "buy_chickens", nil),
		actionCmd(apiBase, "dairy-cow", "Buy a dairy cow", "buy_dairy_cow", nil),
		actionCmd(apiBase, "beef-cow", "Buy a beef steer", "buy_beef_cow", nil),
		actionCmd(apiBase, "goat", "Buy a goat", "buy_goat", nil),
		actionCmd(apiBase, "pig", "Buy a pig", "buy_pig", nil),
	)
	buy.AddCommand(&cobra.Command{
		Use:   "equipment [id]",
		Short: "Buy a piece of equipment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := stringFromArgOrPrompt(args, 0, "Equipment id (tractor, harvester, trailer, mower, baler, wagon, picker, milker, heater)")
			if err != nil {
				return err
			}
			return runAction(cmd, apiBase, "buy_equipment", game.ActionParams{Equipment: strings.ToLower(id)})
		},
	})
	buy.AddCommand(&cobra.Command{
		Use:   "horse [breed]",
		Short: "Buy a horse",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			breed := ""
			if len(args) > 0 {
				breed = strings.TrimSpace(args[0])
			}
			return runAction(cmd, apiBase, "buy_horse", game.ActionParams{Breed: breed})
		},
	})
	return buy
}

func newSellCmd(apiBase *string) *cobra.Command {
	sell := &cobra.Command{
		Use:   "sell",
		Short: "Market sales",
	}
	sell.AddCommand(
		actionCmd(apiBase, "beef", "Sell a beef steer at market price", "sell_beef_cow", nil),
		actionCmd(apiBase, "pig", "Sell a pig at market price", "sell_pig", nil),
		actionCmd(apiBase, "chicken", "Sell a chicken for meat", "sell_chicken", nil),
		actionCmd(apiBase, "produce", "Sell all stored produce", "sell_produce", nil),
	)
	return sell
}

func newChoreCmd(apiBase *string) *cobra.Command {
	chore := &cobra.Command{
		Use:   "chore",
		Short: "Daily chores",
	}
	chore.AddCommand(
		actionCmd(apiBase, "clean", "Muck out the stables", "clean_stable", nil),
		actionCmd(apiBase, "fences", "Repair the fences", "repair_fences", nil),
		actionCmd(apiBase, "eggs", "Collect eggs", "collect_eggs", nil),
		actionCmd(apiBase, "manure", "Collect fertilizer", "collect_manure", nil),
		actionCmd(apiBase, "milk", "Milk the dairy cows", "milk_cows", nil),
		actionCmd(apiBase, "goats", "Milk the goats", "milk_goats", nil),
		actionCmd(apiBase, "coop", "Toggle caged / free range", "toggle_coop", nil),
	)
	return chore
}

func newCropCmd(apiBase *string) *cobra.Command {
	crop := &cobra.Command{
		Use:   "crop",
		Short: "Field work",
	}
	crop.AddCommand(&cobra.Command{
		Use:   "plant [hay|corn|cotton]",
		Short: "Plant a crop",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := stringFromArgOrPrompt(args, 0, "Crop (hay/corn/cotton)")
			if err != nil {
				return err
			}
			return runAction(cmd, apiBase, "plant_crop", game.ActionParams{Crop: strings.ToLower(kind)})
		},
	})
	crop.AddCommand(
		actionCmd(apiBase, "water", "Water the field", "water_crops", nil),
		actionCmd(apiBase, "treat", "Treat the field for pests", "treat_pests", nil),
		actionCmd(apiBase, "harvest", "Harvest a ready field", "harvest_crop", nil),
	)
	return crop
}

func newHorseCmd(apiBase *string) *cobra.Command {
	horse := &cobra.Command{
		Use:   "horse",
		Short: "Horse care and training",
	}
	horse.AddCommand(horseActionCmd(apiBase, "feed", "Feed a horse", "feed_horse"))
	horse.AddCommand(horseActionCmd(apiBase, "groom", "Groom a horse", "groom_horse"))
	horse.AddCommand(horseActionCmd(apiBase, "train", "Train a horse", "train_horse"))
	horse.AddCommand(&cobra.Command{
		Use:   "name [horse_id] [name]",
		Short: "Register a name for a trained horse",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := stringFromArgOrPrompt(args, 0, "Horse ID")
			if err != nil {
				return err
			}
			name, err := stringFromArgOrPrompt(args, 1, "New name")
			if err != nil {
				return err
			}
			return runAction(cmd, apiBase, "name_horse", game.ActionParams{TargetID: id, Name: name})
		},
	})
	return horse
}

func horseActionCmd(apiBase *string, use, short, action string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [horse_id]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := stringFromArgOrPrompt(args, 0, "Horse ID")
			if err != nil {
				return err
			}
			return runAction(cmd, apiBase, action, game.ActionParams{TargetID: id})
		},
	}
}

func newFlockCmd(apiBase *string) *cobra.Command {
	flock := &cobra.Command{
		Use:   "flock",
		Short: "Flock management",
	}
	flock.AddCommand(&cobra.Command{
		Use:   "buy [type] [quantity]",
		Short: "Buy animals for a flock",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := stringFromArgOrPrompt(args, 0, "Flock type (chicken/cow/sheep/pig/goat)")
			if err != nil {
				return err
			}
			qty, err := intFromArgOrPrompt(args, 1, "Quantity", 1)
			if err != nil {
				return err
			}
			return runAction(cmd, apiBase, "buy_flock", game.ActionParams{
				FlockType: strings.ToLower(kind),
				Quantity:  qty,
			})
		},
	})
	flock.AddCommand(&cobra.Command{
		Use:   "feed [flock_id]",
		Short: "Feed a flock",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := stringFromArgOrPrompt(args, 0, "Flock ID")
			if err != nil {
				return err
			}
			return runAction(cmd, apiBase, "feed_flock", game.ActionParams{TargetID: id})
		},
	})
	flock.AddCommand(&cobra.Command{
		Use:   "collect [flock_id]",
		Short: "Collect a flock's production",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := stringFromArgOrPrompt(args, 0, "Flock ID")
			if err != nil {
				return err
			}
			return runAction(cmd, apiBase, "collect_flock", game.ActionParams{TargetID: id})
		},
	})
	return flock
}

func newExpandCmd(apiBase *string) *cobra.Command {
	return actionCmd(apiBase, "expand", "Expand the farm to the next plot tier", "expand_farm", nil)
}

func newLeaderboardCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Richest farms",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			rows, err := newClient(apiBase).Leaderboard(ctx, 25)
			if err != nil {
				return err
			}
			return renderLeaderboard(rows)
		},
	}
}

func newSyncCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replay locally queued offline actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("run `hst init` first: %w", err)
			}
			queue, err := syncq.Load()
			if err != nil {
				return err
			}
			if len(queue) == 0 {
				printInfo("Sync queue is empty.")
				return nil
			}
			client := newClient(apiBase)
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			remaining := make([]syncq.Command, 0, len(queue))
			success := 0
			for _, q := range queue {
				_, err := client.Do(ctx, q.Method, q.Path, sess.PlayerID, q.Body)
				if err != nil {
					remaining = append(remaining, q)
					printError(fmt.Sprintf("Sync failed for %s %s: %v", q.Method, q.Path, err))
					continue
				}
				success++
			}
			if err := syncq.Save(remaining); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Sync complete: replayed=%d remaining=%d", success, len(remaining)))
			return nil
		},
	}
}

// actionCmd builds a zero-argument action command.
func actionCmd(apiBase *string, use, short, action string, params *game.ActionParams) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p game.ActionParams
			if params != nil {
				p = *params
			}
			return runAction(cmd, apiBase, action, p)
		},
	}
}

func runAction(cmd *cobra.Command, apiBase *string, action string, params game.ActionParams) error {
	sess, err := cl.LoadSession()
	if err != nil {
		return fmt.Errorf("run `hst init` first: %w", err)
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	out, err := newClient(apiBase).Action(ctx, sess.PlayerID, action, params)
	if err != nil {
		return queueOnNetworkError(err, syncq.Command{
			Method: "POST",
			Path:   "/v1/actions/" + action,
			Body:   paramsToBody(params),
		})
	}
	printSuccess(out.Message)
	return renderStateSummary(out.State)
}

func paramsToBody(p game.ActionParams) map[string]any {
	body := map[string]any{}
	if p.Equipment != "" {
		body["equipment"] = p.Equipment
	}
	if p.Crop != "" {
		body["crop"] = p.Crop
	}
	if p.FlockType != "" {
		body["flock_type"] = p.FlockType
	}
	if p.Quantity != 0 {
		body["quantity"] = p.Quantity
	}
	if p.TargetID != "" {
		body["target_id"] = p.TargetID
	}
	if p.Breed != "" {
		body["breed"] = p.Breed
	}
	if p.Name != "" {
		body["name"] = p.Name
	}
	if len(body) == 0 {
		return nil
	}
	return body
}

// queueOnNetworkError stores the command for `hst sync` when the API was
// unreachable. Structured API errors are returned as-is; queueing those
// would just replay the same rejection.
func queueOnNetworkError(err error, queued syncq.Command) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "api status") {
		return err
	}
	if qErr := syncq.Push(queued); qErr != nil {
		return fmt.Errorf("request failed (%v) and queueing failed: %w", err, qErr)
	}
	printWarn(fmt.Sprintf("Offline: queued %s %s for `hst sync`.", queued.Method, queued.Path))
	return nil
}

func stringFromArgOrPrompt(args []string, idx int, label string) (string, error) {
	if len(args) > idx {
		v := strings.TrimSpace(args[idx])
		if v != "" {
			return v, nil
		}
	}
	return promptRequired(label)
}

func intFromArgOrPrompt(args []string, idx int, label string, min int) (int, error) {
	if len(args) > idx {
		v, err := parsePositiveInt(strings.TrimSpace(args[idx]), min)
		if err != nil {
			return 0, fmt.Errorf("invalid %s", strings.ToLower(label))
		}
		return v, nil
	}
	return promptInt(label, min)
}
