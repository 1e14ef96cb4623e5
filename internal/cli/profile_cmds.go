package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"learner/internal/profile"
	"learner/internal/recommend"
	"learner/internal/ui/lessonview"
)

// resetInput allows tests to answer the reset confirmation.
var resetInput io.Reader = os.Stdin

func runComplete(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to config file (default: search for .learner/config.yml)")
		rest, code, ok := parseFlags(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if len(rest) != 1 {
			return usageError(cmd, stderr, "expected one lesson id")
		}

		return withApp(appOptions{configPath: *configPath, command: cmd.Name}, stderr, func(ctx context.Context, a *app) int {
			level, slug, _, err := a.resolveLesson(rest[0])
			if err != nil {
				return usageError(cmd, stderr, "%v", err)
			}
			id := profile.LessonID(level, slug)
			changed := false
			p, err := a.profiles.Update(ctx, func(p profile.UserProfile) (profile.UserProfile, bool) {
				var updated profile.UserProfile
				updated, changed = profile.MarkLessonCompleted(p, id, now())
				return updated, changed
			})
			if err != nil {
				fmt.Fprintf(stderr, "Failed to update profile: %v\n", err)
				return ExitError
			}
			if changed {
				fmt.Fprintf(stdout, "Marked %s as completed.\n", id)
			} else {
				fmt.Fprintf(stdout, "%s was already completed.\n", id)
			}
			if p.Preferences.ShowProgress {
				summary := recommend.ComputeProgress(p, a.catalog.Sizes(), a.catalog)
				fmt.Fprintf(stdout, "Overall progress: %d%%\n", summary.Overall.Percentage)
			}
			return ExitOK
		})
	}
}

func runProgress(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to config file (default: search for .learner/config.yml)")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		rest, code, ok := parseFlags(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if len(rest) > 0 {
			return usageError(cmd, stderr, "unexpected arguments: %s", strings.Join(rest, " "))
		}

		return withApp(appOptions{configPath: *configPath, command: cmd.Name}, stderr, func(ctx context.Context, a *app) int {
			p, err := a.profiles.Load(ctx)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load profile: %v\n", err)
				return ExitError
			}
			fmt.Fprintln(stdout, recommend.Greeting(now().Hour()))
			fmt.Fprintln(stdout)
			summary := recommend.ComputeProgress(p, a.catalog.Sizes(), a.catalog)
			fmt.Fprintln(stdout, lessonview.RenderProgress(summary, a.catalog.Levels(), a.renderOptions(stdout, *noColor)))
			return ExitOK
		})
	}
}

func runRecommend(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to config file (default: search for .learner/config.yml)")
		returning := flags.Bool("returning", false, "Show the continue-learning list")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		rest, code, ok := parseFlags(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if len(rest) > 0 {
			return usageError(cmd, stderr, "unexpected arguments: %s", strings.Join(rest, " "))
		}

		return withApp(appOptions{configPath: *configPath, command: cmd.Name}, stderr, func(ctx context.Context, a *app) int {
			p, err := a.profiles.Load(ctx)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load profile: %v\n", err)
				return ExitError
			}
			if !p.OnboardingCompleted {
				fmt.Fprintln(stderr, "Onboarding not completed; run \"learner onboard\" for tailored picks.")
			}
			opts := a.renderOptions(stdout, *noColor)
			if *returning || profile.IsReturningUser(p, now()) {
				fmt.Fprintln(stdout, lessonview.RenderRecommendations("Continúa aprendiendo", recommend.ContinueLearning(p, a.catalog), opts))
				return ExitOK
			}
			recs := recommend.RecommendNext(p, a.catalog, profile.Completed(p))
			fmt.Fprintln(stdout, lessonview.RenderRecommendations("Recomendado para ti", recs, opts))
			return ExitOK
		})
	}
}

func runOnboard(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to config file (default: search for .learner/config.yml)")
		experience := flags.String("experience", "", "beginner|intermediate|advanced")
		interests := flags.String("interests", "", "Comma separated: "+strings.Join(profile.Interests, ","))
		goals := flags.String("goals", "", "Comma separated learning goals")
		timeCommitment := flags.String("time", "", "light|regular|intensive")
		learning := flags.String("learning", "", "theory|practice|mixed")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		rest, code, ok := parseFlags(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if len(rest) > 0 {
			return usageError(cmd, stderr, "unexpected arguments: %s", strings.Join(rest, " "))
		}

		answers, err := onboardingAnswers(*experience, *interests, *goals, *timeCommitment, *learning)
		if err != nil {
			return usageError(cmd, stderr, "%v", err)
		}

		return withApp(appOptions{configPath: *configPath, command: cmd.Name}, stderr, func(ctx context.Context, a *app) int {
			p, err := a.profiles.Update(ctx, func(p profile.UserProfile) (profile.UserProfile, bool) {
				return profile.CompleteOnboarding(p, answers, now()), true
			})
			if err != nil {
				fmt.Fprintf(stderr, "Failed to save profile: %v\n", err)
				return ExitError
			}
			fmt.Fprintln(stdout, "Onboarding saved.")
			if p.Preferences.ShowRecommendations {
				recs := recommend.RecommendNext(p, a.catalog, profile.Completed(p))
				fmt.Fprintln(stdout)
				fmt.Fprintln(stdout, lessonview.RenderRecommendations("Recomendado para ti", recs, a.renderOptions(stdout, *noColor)))
			}
			return ExitOK
		})
	}
}

func onboardingAnswers(experience, interests, goals, timeCommitment, learning string) (profile.OnboardingAnswers, error) {
	var answers profile.OnboardingAnswers
	var ok bool
	if answers.Experience, ok = profile.ParseExperience(strings.TrimSpace(experience)); !ok || answers.Experience == "" {
		return answers, fmt.Errorf("invalid --experience %q (expected beginner|intermediate|advanced)", experience)
	}
	if answers.TimeCommitment, ok = profile.ParseTimeCommitment(strings.TrimSpace(timeCommitment)); !ok {
		return answers, fmt.Errorf("invalid --time %q (expected light|regular|intensive)", timeCommitment)
	}
	if answers.PreferredLearning, ok = profile.ParseLearningStyle(strings.TrimSpace(learning)); !ok {
		return answers, fmt.Errorf("invalid --learning %q (expected theory|practice|mixed)", learning)
	}
	answers.Interests = splitList(interests)
	for _, tag := range answers.Interests {
		if !profile.IsInterest(tag) {
			return answers, fmt.Errorf("unknown interest %q (expected one of %s)", tag, strings.Join(profile.Interests, ", "))
		}
	}
	answers.Goals = splitList(goals)
	return answers, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func runPrefs(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to config file (default: search for .learner/config.yml)")
		showRecs := flags.Bool("recommendations", true, "Show recommendations after onboarding")
		showProgress := flags.Bool("progress", true, "Show progress")
		reminders := flags.String("reminders", "", "daily|weekly|never")
		rest, code, ok := parseFlags(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if len(rest) > 0 {
			return usageError(cmd, stderr, "unexpected arguments: %s", strings.Join(rest, " "))
		}
		set := map[string]bool{}
		flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

		var frequency profile.ReminderFrequency
		if set["reminders"] {
			var ok bool
			if frequency, ok = profile.ParseReminderFrequency(strings.TrimSpace(*reminders)); !ok {
				return usageError(cmd, stderr, "invalid --reminders %q (expected daily|weekly|never)", *reminders)
			}
		}

		return withApp(appOptions{configPath: *configPath, command: cmd.Name}, stderr, func(ctx context.Context, a *app) int {
			p, err := a.profiles.Update(ctx, func(p profile.UserProfile) (profile.UserProfile, bool) {
				prefs := p.Preferences
				if set["recommendations"] {
					prefs.ShowRecommendations = *showRecs
				}
				if set["progress"] {
					prefs.ShowProgress = *showProgress
				}
				if set["reminders"] {
					prefs.ReminderFrequency = frequency
				}
				if prefs == p.Preferences {
					return p, false
				}
				return profile.Apply(p, profile.Patch{Preferences: &prefs}), true
			})
			if err != nil {
				fmt.Fprintf(stderr, "Failed to update profile: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "recommendations: %t\nprogress: %t\nreminders: %s\n",
				p.Preferences.ShowRecommendations, p.Preferences.ShowProgress, p.Preferences.ReminderFrequency)
			return ExitOK
		})
	}
}

func runReset(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to config file (default: search for .learner/config.yml)")
		yes := flags.Bool("yes", false, "Skip the confirmation prompt")
		rest, code, ok := parseFlags(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if len(rest) > 0 {
			return usageError(cmd, stderr, "unexpected arguments: %s", strings.Join(rest, " "))
		}
		if !*yes {
			proceed, err := confirm(bufio.NewReader(resetInput), stdout, "Delete your profile and completed lessons?", false)
			if err != nil {
				fmt.Fprintf(stderr, "Reset failed: %v\n", err)
				return ExitError
			}
			if !proceed {
				fmt.Fprintln(stderr, "Reset cancelled.")
				return ExitError
			}
		}

		return withApp(appOptions{configPath: *configPath, command: cmd.Name}, stderr, func(ctx context.Context, a *app) int {
			if err := a.profiles.Reset(ctx); err != nil {
				fmt.Fprintf(stderr, "Reset failed: %v\n", err)
				return ExitError
			}
			fmt.Fprintln(stdout, "Profile deleted.")
			return ExitOK
		})
	}
}
