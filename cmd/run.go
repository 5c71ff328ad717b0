package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/internbuddy/internal/ai"
	"github.com/spigell/internbuddy/internal/catalog"
	"github.com/spigell/internbuddy/internal/flow"
	"github.com/spigell/internbuddy/internal/intake"
	"github.com/spigell/internbuddy/internal/locale"
	"github.com/spigell/internbuddy/internal/logger"
	"github.com/spigell/internbuddy/internal/profile"
	"github.com/spigell/internbuddy/internal/ranking"
)

const (
	PromptReport              = "Show report"
	PromptCourses             = "Show suggested courses"
	PromptDraftNote           = "Draft an application note"
	PromptToFile              = "Dump recommendations to file"
	PromptAppendToExcludeFile = "Append recommendations to exclude file"
	PromptStartOver           = "Start over"
	PromptChangeLanguage      = "Change language"
	PromptExit                = "Exit"
	PromptBack                = "back"

	// changeLanguageCommand typed as an answer leaves the chat for the language screen.
	changeLanguageCommand = "/lang"
)

var (
	errExit           = errors.New("exit requested")
	errChangeLanguage = errors.New("language change requested")
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Ask the intake questions and show recommendations",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("locale", "l", "", "language code; skips the language selection screen")
	runCmd.Flags().StringP("answers-file", "a", "", "read answers from a file, one per line, instead of asking")
	runCmd.Flags().BoolP("auto-approve", "y", false, "print the report and exit without the action menu")
	runCmd.Flags().StringP("candidates-file", "c", "", "internships and courses file (json, yaml or toml). Default is the built-in sample.")
	runCmd.Flags().StringP("exclude-file", "e", "", "special file with candidates to exclude. Default is unset.")

	viper.BindPFlag("candidates-file", runCmd.Flags().Lookup("candidates-file"))
	viper.BindPFlag("exclude-file", runCmd.Flags().Lookup("exclude-file"))
}

// application keeps the state of one interactive run.
type application struct {
	ctx      context.Context
	logger   *zap.Logger
	config   *Config
	machine  *flow.Machine
	session  *intake.Session
	pool     *catalog.Pool
	profile  *profile.Profile
	results  ranking.Results
	courses  []ranking.CourseSuggestion
	drafter  ai.Drafter
	answers  intake.Source
	auto     bool
}

func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the internbuddy", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	registry, err := buildRegistry(config)
	if err != nil {
		logger.Fatal("loading question scripts", zap.Error(err))
	}

	pool, err := loadPool(ctx, config, logger)
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err))
	}

	if pool.OfKind(catalog.KindInternship).Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no internships left after filters"))
		return
	}

	a := &application{
		ctx:     ctx,
		logger:  logger,
		config:  config,
		machine: flow.New(),
		pool:    pool,
		auto:    cmd.Flag("auto-approve").Value.String() == "true",
	}

	if config.AI != nil && config.AI.Enabled {
		drafter, err := newAIDrafter(ctx, config.AI, logger)
		if err != nil {
			logger.Warn("application notes are disabled", zap.Error(err))
		} else {
			a.drafter = drafter
		}
	}

	loc := strings.TrimSpace(cmd.Flag("locale").Value.String())
	if answersFile := strings.TrimSpace(cmd.Flag("answers-file").Value.String()); answersFile != "" {
		file, err := os.Open(answersFile)
		if err != nil {
			logger.Fatal("opening answers file", zap.Error(err))
		}
		defer file.Close()
		a.answers = intake.NewLineSource(file)
		if loc == "" {
			loc = config.Locale
		}
	}

	if loc == "" {
		if loc, err = selectLanguage(); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	if _, err := a.machine.Fire(flow.LanguageSelected); err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	a.session, err = intake.New(registry, loc, logger)
	if err != nil {
		logger.Fatal("starting intake", zap.Error(err))
	}

	if a.answers == nil {
		a.answers = &promptSource{session: a.session}
	}

	if err := a.loop(); err != nil && !errors.Is(err, errExit) {
		logger.Fatal("exiting", zap.Error(err))
	}
}

func (a *application) loop() error {
	for {
		switch a.machine.Stage() {
		case flow.StageLanguage:
			loc, err := selectLanguage()
			if err != nil {
				return err
			}
			if _, err := a.machine.Fire(flow.LanguageSelected); err != nil {
				return err
			}
			a.session.ChangeLocale(loc)

		case flow.StageChat:
			if err := a.chat(); err != nil {
				if errors.Is(err, errChangeLanguage) {
					if _, err := a.machine.Fire(flow.ChangeLanguage); err != nil {
						return err
					}
					continue
				}
				return err
			}

		case flow.StageRecommendations:
			if err := a.recommendations(); err != nil {
				return err
			}
		}
	}
}

func (a *application) chat() error {
	reply, err := intake.Drive(a.ctx, a.session, a.answers, func(r intake.Reply) {
		if r.Reprompt {
			a.logger.Info("please answer the question", zap.String("question", r.Prompt))
		}
	})
	if err != nil {
		return err
	}

	a.logger.Info(reply.Prompt)
	a.profile = reply.Profile
	a.results, a.courses = recommend(a.profile, a.pool, a.config)

	_, err = a.machine.Fire(flow.IntakeCompleted)
	return err
}

func (a *application) recommendations() error {
	loc := a.session.Locale()
	a.present(loc)

	if a.auto {
		return errExit
	}

	items := a.menu()

	for {
		menu := promptui.Select{
			Label: "What next?",
			Items: items,
		}
		_, action, err := menu.Run()
		if err != nil {
			return err
		}

		done, err := a.handleAction(action, loc)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (a *application) menu() []string {
	items := []string{PromptReport, PromptCourses}
	if a.drafter != nil {
		items = append(items, PromptDraftNote)
	}
	items = append(items, PromptToFile)
	if strings.TrimSpace(a.config.ExcludeFile) != "" && a.results.Len() > 0 {
		items = append(items, PromptAppendToExcludeFile)
	}
	return append(items, PromptStartOver, PromptChangeLanguage, PromptExit)
}

// handleAction runs one menu action. done reports whether the stage changed.
func (a *application) handleAction(action, loc string) (bool, error) {
	switch action {
	case PromptReport:
		pretty, _ := json.MarshalIndent(a.results.ReportByCategory(loc), "", "  ")
		a.logger.Info(string(pretty), zap.Int("recommendations count", a.results.Len()))
		return false, nil
	case PromptCourses:
		for _, s := range a.courses {
			a.logger.Info(s.Course.Title,
				zap.String("provider", s.Course.Provider),
				zap.String("level", s.Course.Level),
				zap.String("duration", s.Course.Duration),
				zap.Strings("covers", s.Covers),
			)
		}
		if len(a.courses) == 0 {
			a.logger.Info("no courses cover the missing skills")
		}
		return false, nil
	case PromptDraftNote:
		return false, a.draftNote(loc)
	case PromptToFile:
		filename, err := catalog.DumpToTmpFile(a.results)
		if err != nil {
			return false, fmt.Errorf("dump results to file: %w", err)
		}
		a.logger.Info("dumping result to file", zap.String("filename", filename))
		return false, nil
	case PromptAppendToExcludeFile:
		if err := a.appendToExcludeFile(); err != nil {
			return false, err
		}
		a.results, a.courses = recommend(a.profile, a.pool, a.config)
		return true, nil
	case PromptStartOver:
		if _, err := a.machine.Fire(flow.Restart); err != nil {
			return false, err
		}
		a.session.Start(loc)
		return true, nil
	case PromptChangeLanguage:
		_, err := a.machine.Fire(flow.ChangeLanguage)
		return true, err
	case PromptExit:
		a.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return false, errExit
	default:
		return false, fmt.Errorf("invalid action: %s", action)
	}
}

func (a *application) present(loc string) {
	for _, group := range a.results.Groups {
		label := ranking.Label(loc, group.Category)
		if len(group.Items) == 0 {
			a.logger.Info(label, zap.String("recommendations", "none"))
			continue
		}
		for _, s := range group.Items {
			a.logger.Info(label,
				append(logger.CandidateFields(s.Candidate.ID, string(s.Category)),
					zap.String("title", s.Candidate.Title),
					zap.String("organization", s.Candidate.Organization),
					zap.Int("match", s.MatchPercentage),
					zap.String("reason", s.MatchReason),
				)...,
			)
		}
	}
}

func (a *application) draftNote(loc string) error {
	recs := a.results.All()
	items := make([]string, 0, len(recs)+1)
	for _, s := range recs {
		items = append(items, fmt.Sprintf("%s %s / %s / %d%%", s.Candidate.ID, s.Candidate.Title, s.Candidate.Organization, s.MatchPercentage))
	}

	selectPrompt := promptui.Select{
		Label: "Choose an internship and press ENTER",
		Items: append(items, PromptBack),
	}
	idx, selected, err := selectPrompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptBack {
		return nil
	}

	draft, err := a.drafter.Draft(a.ctx, a.profile, recs[idx], loc)
	if err != nil {
		a.logger.Warn("drafting application note failed", zap.Error(err))
		return nil
	}

	a.logger.Info(draft.Message, zap.Strings("highlights", draft.Highlights))
	return nil
}

func (a *application) appendToExcludeFile() error {
	excludeFile := a.config.ExcludeFile

	excluded, err := catalog.ReadExcludedFile(excludeFile)
	if err != nil {
		return err
	}

	recommended := &catalog.Pool{}
	for _, s := range a.results.All() {
		recommended.Items = append(recommended.Items, s.Candidate)
	}
	excluded.Append(recommended.ToExcluded(a.profile.Name, "already recommended", time.Now()))

	if err := excluded.ToFile(excludeFile); err != nil {
		return err
	}

	a.logger.Info("appended to exclude file", zap.String("filename", excludeFile))
	a.pool.Exclude(excluded.IDs())
	return nil
}

func selectLanguage() (string, error) {
	items := make([]string, 0, len(locale.Supported))
	for _, lang := range locale.Supported {
		items = append(items, fmt.Sprintf("%s (%s)", lang.NativeName, lang.Name))
	}

	languagePrompt := promptui.Select{
		Label: "Choose your language",
		Items: items,
	}
	idx, _, err := languagePrompt.Run()
	if err != nil {
		return "", err
	}
	return locale.Supported[idx].Code, nil
}

// promptSource asks the current question in the terminal.
type promptSource struct {
	session *intake.Session
}

func (p *promptSource) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	answered, total := p.session.Progress()
	question := promptui.Prompt{
		Label: fmt.Sprintf("[%d/%d] %s", answered+1, total, p.session.Current().Prompt),
	}

	answer, err := question.Run()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == changeLanguageCommand {
		return "", errChangeLanguage
	}
	return answer, nil
}

var _ intake.Source = (*promptSource)(nil)
