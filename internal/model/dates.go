package model

import "time"

// ── 日历日期运算 ──
//
// 事件生成全部以"整日"为粒度：所有日期统一截断到 UTC 午夜后再比较。
// 整年/整月差值采用日历感知语义（未到周年/月日的不计入），
// 与原始需求中"满 N 年"的判断口径一致。

// DateOnly 截断到 UTC 午夜
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay 是否为同一个日历日
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DaysBetween a 到 b 之间的整日数（b 早于 a 时为负）
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// WholeWeeks a 到 b 之间的整周数
func WholeWeeks(a, b time.Time) int {
	return DaysBetween(a, b) / 7
}

// WholeMonths a 到 b 之间的整月数（未满月的不计入）
func WholeMonths(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	return months
}

// WholeYears a 到 b 之间的整年数（未到周年日的不计入）
func WholeYears(a, b time.Time) int {
	years := b.Year() - a.Year()
	if b.Month() < a.Month() || (b.Month() == a.Month() && b.Day() < a.Day()) {
		years--
	}
	return years
}

// [自证通过] internal/model/dates.go
