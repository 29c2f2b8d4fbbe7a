package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thatchakomP/pixel-cat-callior/entity"
)

var registerCmd = &cobra.Command{
	Use:   "register <email> <password>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := newClient().Register(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. Run `pixelcat login` next.\n", u.Email)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Sign in and save the session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if err := saveSession(session{Token: resp.Token, Email: resp.User.Email}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", resp.User.Email)
		return nil
	},
}

var (
	onboardName   string
	onboardAge    int
	onboardGender string
	onboardHeight float64
	onboardWeight float64
	onboardGoals  []string
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Enter biometrics and goals and receive a starter cat",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		p, err := store.Onboard(cmd.Context(), entity.OnboardRequest{
			Name:     onboardName,
			Age:      onboardAge,
			Gender:   onboardGender,
			HeightCm: onboardHeight,
			WeightKg: onboardWeight,
			Goals:    onboardGoals,
		})
		if err != nil {
			return err
		}
		printProfile(cmd.OutOrStdout(), p)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show calories, collection and the next cat to unlock",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		p, err := store.Profile(cmd.Context())
		if err != nil {
			return err
		}
		printProfile(cmd.OutOrStdout(), p)
		return nil
	},
}

var statsGoals []string

var updateStatsCmd = &cobra.Command{
	Use:   "update-stats <weight-kg>",
	Short: "Record a new weight and goal set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
		if err != nil || weight <= 0 {
			return fmt.Errorf("invalid weight %q", args[0])
		}
		store, err := newStore()
		if err != nil {
			return err
		}
		p, unlocked, err := store.UpdateStats(cmd.Context(), weight, statsGoals)
		if err != nil {
			return err
		}
		printUnlocked(cmd.OutOrStdout(), unlocked)
		printProfile(cmd.OutOrStdout(), p)
		return nil
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <image>",
	Short: "Log a meal from a photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer f.Close()

		store, err := newStore()
		if err != nil {
			return err
		}
		resp, err := store.UploadFood(cmd.Context(), args[0], f)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, resp.Message)
		for _, food := range resp.FoodLog.DetectedFoods {
			fmt.Fprintf(out, "  %-28s %4d kcal\n", food.Name, food.Calories)
		}
		fmt.Fprintf(out, "Total: %d kcal\n", resp.FoodLog.TotalCalories)
		printUnlocked(out, resp.UnlockedCats)

		p, err := store.Profile(cmd.Context())
		if err != nil {
			return err
		}
		printProfile(out, p)
		return nil
	},
}

var setActiveCmd = &cobra.Command{
	Use:   "set-active <cat-id>",
	Short: "Display one of your unlocked cats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		p, err := store.SetActiveCat(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printProfile(cmd.OutOrStdout(), p)
		return nil
	},
}

var catsCmd = &cobra.Command{
	Use:   "cats",
	Short: "List the unlockable cats and their criteria",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		c := newClient()
		c.Token = s.Token
		cats, err := c.Cats(cmd.Context())
		if err != nil {
			return err
		}
		for _, cat := range cats {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-16s %s\n", cat.ID, cat.Name, describeCriteria(cat.UnlockCriteria))
		}
		return nil
	},
}

var logsLimit int

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		c := newClient()
		c.Token = s.Token
		logs, err := c.FoodLogs(cmd.Context(), logsLimit)
		if err != nil {
			return err
		}
		for _, l := range logs {
			names := make([]string, 0, len(l.DetectedFoods))
			for _, f := range l.DetectedFoods {
				names = append(names, f.Name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %5d kcal  %s\n", l.CreatedAt.Local().Format("2006-01-02 15:04"), l.TotalCalories, strings.Join(names, ", "))
		}
		return nil
	},
}

func describeCriteria(c entity.UnlockCriteria) string {
	var parts []string
	if c.TotalCalories != nil {
		parts = append(parts, fmt.Sprintf("%d kcal", *c.TotalCalories))
	}
	if len(c.GoalMatch) > 0 {
		parts = append(parts, "goal: "+strings.Join(c.GoalMatch, " / "))
	}
	if c.BMITarget != "" {
		parts = append(parts, "bmi: "+c.BMITarget)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(registerCmd, loginCmd, onboardCmd, profileCmd, updateStatsCmd, uploadCmd, setActiveCmd, catsCmd, logsCmd)

	onboardCmd.Flags().StringVar(&onboardName, "name", "", "Display name")
	onboardCmd.Flags().IntVar(&onboardAge, "age", 0, "Age in years")
	onboardCmd.Flags().StringVar(&onboardGender, "gender", "", "male, female or other")
	onboardCmd.Flags().Float64Var(&onboardHeight, "height", 0, "Height in cm")
	onboardCmd.Flags().Float64Var(&onboardWeight, "weight", 0, "Weight in kg")
	onboardCmd.Flags().StringSliceVar(&onboardGoals, "goal", nil, "Goal, repeatable (e.g. --goal \"be slimmer\")")
	for _, f := range []string{"name", "age", "gender", "height", "weight"} {
		_ = onboardCmd.MarkFlagRequired(f)
	}

	updateStatsCmd.Flags().StringSliceVar(&statsGoals, "goal", nil, "Goal, repeatable; replaces the current set")
	logsCmd.Flags().IntVar(&logsLimit, "limit", 20, "Number of meals to show")
}
