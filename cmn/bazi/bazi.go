// Package bazi 提供六十甲子、天干阴阳五行以及大运排序等基础换算
package bazi

import (
	"strings"
	"unicode/utf8"
)

type Polarity string

const (
	Yang Polarity = "YANG"
	Yin  Polarity = "YIN"
)

// ChildhoodLuck 起运前的童限标记
const ChildhoodLuck = "童限"

var (
	Stems    = []string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	Branches = []string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

	// Cycle 六十甲子，甲子为第 0 项
	Cycle = buildCycle()

	stemElement = map[string]string{
		"甲": "木", "乙": "木",
		"丙": "火", "丁": "火",
		"戊": "土", "己": "土",
		"庚": "金", "辛": "金",
		"壬": "水", "癸": "水",
	}

	yangStems = map[string]bool{"甲": true, "丙": true, "戊": true, "庚": true, "壬": true}

	cycleIndex = func() map[string]int {
		m := make(map[string]int, len(Cycle))
		for i, term := range Cycle {
			m[term] = i
		}
		return m
	}()
)

func buildCycle() []string {
	cycle := make([]string, 60)
	for i := range cycle {
		cycle[i] = Stems[i%10] + Branches[i%12]
	}
	return cycle
}

// FirstStem 取干支的首字（天干），空串返回空
func FirstStem(pillar string) string {
	pillar = strings.TrimSpace(pillar)
	if pillar == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(pillar)
	return string(r)
}

// StemPolarity 甲丙戊庚壬为阳，其余为阴；空柱按阳处理
func StemPolarity(pillar string) Polarity {
	stem := FirstStem(pillar)
	if stem == "" || yangStems[stem] {
		return Yang
	}
	return Yin
}

// IsForward 阳男阴女顺行，阴男阳女逆行
func IsForward(male bool, yearPillar string) bool {
	yang := StemPolarity(yearPillar) == Yang
	if male {
		return yang
	}
	return !yang
}

// Element 天干对应的五行，未知天干按土处理
func Element(pillar string) string {
	if e, ok := stemElement[FirstStem(pillar)]; ok {
		return e
	}
	return "土"
}

// Index 干支在六十甲子中的序号，非法干支返回 -1
func Index(term string) int {
	if i, ok := cycleIndex[strings.TrimSpace(term)]; ok {
		return i
	}
	return -1
}

// YearGanZhi 公历年份对应的流年干支
func YearGanZhi(year int) string {
	return Cycle[mod(year-4, 60)]
}

// Next 顺行取下一个干支，逆行取上一个；非法干支从甲子起算
func Next(term string, forward bool) string {
	return Step(term, forward, 1)
}

// Step 从 term 出发按方向走 n 步
func Step(term string, forward bool, n int) string {
	i := Index(term)
	if i < 0 {
		i = 0
	}
	if !forward {
		n = -n
	}
	return Cycle[mod(i+n, 60)]
}

// LuckSequence 以 first 为第一步，生成连续 n 步大运
func LuckSequence(first string, forward bool, n int) []string {
	if n <= 0 {
		return nil
	}
	seq := make([]string, n)
	for i := range seq {
		seq[i] = Step(first, forward, i)
	}
	return seq
}

// SuperLuckAt 某一虚岁所处的大运：起运前为童限，此后每十年换一步
func SuperLuckAt(age, startAge int, first string, forward bool) string {
	if age < startAge {
		return ChildhoodLuck
	}
	return Step(first, forward, (age-startAge)/10)
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
