package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"LifeKLine/client"
	"LifeKLine/cmn"
	"LifeKLine/cmn/destiny"
)

// analyzeOptions analyze 子命令的参数
type analyzeOptions struct {
	baseURL string
	timeout time.Duration
	asJSON  bool
	pinyin  bool
	strict  bool

	name           string
	gender         string
	birthYear      int
	yearPillar     string
	monthPillar    string
	dayPillar      string
	hourPillar     string
	startAge       int
	firstSuperLuck string
	modelName      string
	apiBaseURL     string
	apiKey         string
}

var analyzeOpts analyzeOptions

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Request a life K-line from a running backend",
	Long: `Send the four pillars and luck settings to POST {base-url}/analyze and
print the chart and the categorised report.

Example:
  lifekline analyze --gender Male --birth-year 1990 \
    --year 庚午 --month 辛巳 --day 庚辰 --hour 癸未 \
    --start-age 8 --first-luck 壬午 --api-key random --pinyin`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeOpts.baseURL, "base-url", client.DefaultBaseURL, "backend base URL")
	f.DurationVar(&analyzeOpts.timeout, "timeout", 0, "request timeout, 0 waits for the backend")
	f.BoolVar(&analyzeOpts.asJSON, "json", false, "print the raw JSON result")
	f.BoolVar(&analyzeOpts.pinyin, "pinyin", false, "annotate pillars with pinyin")
	f.BoolVar(&analyzeOpts.strict, "strict", false, "validate the result structure")

	f.StringVar(&analyzeOpts.name, "name", "", "display name")
	f.StringVar(&analyzeOpts.gender, "gender", string(destiny.GenderMale), "Male or Female")
	f.IntVar(&analyzeOpts.birthYear, "birth-year", 0, "birth year (Gregorian)")
	f.StringVar(&analyzeOpts.yearPillar, "year", "", "year pillar, e.g. 庚午")
	f.StringVar(&analyzeOpts.monthPillar, "month", "", "month pillar")
	f.StringVar(&analyzeOpts.dayPillar, "day", "", "day pillar")
	f.StringVar(&analyzeOpts.hourPillar, "hour", "", "hour pillar")
	f.IntVar(&analyzeOpts.startAge, "start-age", 1, "age at which the first luck pillar starts")
	f.StringVar(&analyzeOpts.firstSuperLuck, "first-luck", "", "first luck pillar")
	f.StringVar(&analyzeOpts.modelName, "model", "", "model name override")
	f.StringVar(&analyzeOpts.apiBaseURL, "api-base-url", "", "model service base URL override")
	f.StringVar(&analyzeOpts.apiKey, "api-key", "", "model API key, or demo / random / formula")

	for _, name := range []string{"year", "month", "day", "hour", "first-luck"} {
		_ = analyzeCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(analyzeCmd)
}

// optional 空串表示未提供
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return destiny.String(s)
}

func (o analyzeOptions) input() destiny.UserInput {
	return destiny.UserInput{
		Name:           optional(o.name),
		Gender:         destiny.Gender(o.gender),
		BirthYear:      destiny.FlexInt(o.birthYear),
		YearPillar:     o.yearPillar,
		MonthPillar:    o.monthPillar,
		DayPillar:      o.dayPillar,
		HourPillar:     o.hourPillar,
		StartAge:       destiny.FlexInt(o.startAge),
		FirstSuperLuck: o.firstSuperLuck,
		ModelName:      optional(o.modelName),
		APIBaseURL:     optional(o.apiBaseURL),
		APIKey:         optional(o.apiKey),
	}
}

func (o analyzeOptions) client() *client.Client {
	opts := []client.Option{
		client.WithBaseURL(o.baseURL),
		client.WithLogger(cmn.GetLogger()),
	}
	if o.strict {
		opts = append(opts, client.WithStrictResponse())
	}
	return client.New(opts...)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if debug {
		cmn.InitLogger(true)
	}

	input := analyzeOpts.input()
	if err := input.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if analyzeOpts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, analyzeOpts.timeout)
		defer cancel()
	}

	result, err := analyzeOpts.client().AnalyzeDestiny(ctx, input)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	out := cmd.OutOrStdout()
	if analyzeOpts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	}

	return newRenderer(analyzeOpts.pinyin).Render(out, result)
}
