package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	gopinyin "github.com/mozillazg/go-pinyin"

	"LifeKLine/cmn/destiny"
)

var chartHeader = []string{"年龄", "年份", "流年", "大运", "开", "收", "高", "低", "评分", "批语"}

// renderer 把分析结果输出为终端表格，宽度按显示宽度计算以对齐中文
type renderer struct {
	withPinyin bool
	args       gopinyin.Args
}

func newRenderer(withPinyin bool) *renderer {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone
	return &renderer{withPinyin: withPinyin, args: args}
}

// term 干支，需要时附上拼音
func (r *renderer) term(s string) string {
	if !r.withPinyin || s == "" {
		return s
	}
	syllables := gopinyin.LazyPinyin(s, r.args)
	if len(syllables) == 0 {
		return s
	}
	return s + " " + strings.Join(syllables, " ")
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (r *renderer) chartRows(points []destiny.KLinePoint) [][]string {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			strconv.Itoa(p.Age),
			strconv.Itoa(p.Year),
			r.term(p.GanZhi),
			r.term(destiny.StringValue(p.SuperLuck)),
			formatScore(p.Open),
			formatScore(p.Close),
			formatScore(p.High),
			formatScore(p.Low),
			formatScore(p.Score),
			p.Reason,
		})
	}
	return rows
}

// writeTable 最后一列不补齐
func writeTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	line := func(cells []string) error {
		var b strings.Builder
		for i, cell := range cells {
			if i == len(cells)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		_, err := fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
		return err
	}

	if err := line(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := line(row); err != nil {
			return err
		}
	}
	return nil
}

// Render 先输出 K 线表，再输出分类报告
func (r *renderer) Render(w io.Writer, result *destiny.LifeDestinyResult) error {
	if err := writeTable(w, chartHeader, r.chartRows(result.ChartData)); err != nil {
		return err
	}

	a := result.Analysis
	bazi := make([]string, 0, len(a.Bazi))
	for _, p := range a.Bazi {
		bazi = append(bazi, r.term(p))
	}

	sections := []struct {
		label string
		text  string
		score float64
	}{
		{"命理总评", a.Summary, a.SummaryScore},
		{"性格分析", a.Personality, a.PersonalityScore},
		{"事业行业", a.Industry, a.IndustryScore},
		{"发展风水", a.Geomancy, a.GeomancyScore},
		{"财富层级", a.Wealth, a.WealthScore},
		{"婚姻情感", a.Marriage, a.MarriageScore},
		{"身体健康", a.Health, a.HealthScore},
		{"六亲关系", a.Family, a.FamilyScore},
		{"币圈交易", a.Crypto, a.CryptoScore},
	}

	if _, err := fmt.Fprintf(w, "\n八字：%s\n", strings.Join(bazi, " / ")); err != nil {
		return err
	}
	for _, s := range sections {
		if _, err := fmt.Fprintf(w, "【%s】%s/10  %s\n", s.label, formatScore(s.score), s.text); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "暴富流年：%s  交易风格：%s\n", a.CryptoYear, a.CryptoStyle)
	return err
}
