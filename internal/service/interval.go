package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// 区间算术 — 墙钟分钟换算与跨午夜区间处理。
// 所有函数均为纯函数；墙钟提取固定在注入的业务时区下进行，
// 与部署环境的本地时区无关。

const minutesPerDay = 1440

// minuteOfDay 将绝对时间换算为业务时区下的"当日第几分钟"。
func minuteOfDay(t time.Time, loc *time.Location) int {
	lt := t.In(loc)
	return lt.Hour()*60 + lt.Minute()
}

// parseClock 解析 "HH:MM"（或 "HH:MM:SS"）为当日分钟数。
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("无效的时刻格式 %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("无效的时刻格式 %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("无效的时刻格式 %q", s)
	}
	return h*60 + m, nil
}

// formatClock 将当日分钟数格式化为 "HH:MM"。
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// splitIntervals 将 (start, end) 墙钟对解析为一或两个不跨午夜的分钟区间。
// end ≤ start 视为跨午夜班次：22:00-05:00 → [1320,1440) 与 [0,300)。
func splitIntervals(start, end int) [][2]int {
	if start < end {
		return [][2]int{{start, end}}
	}
	return [][2]int{{start, minutesPerDay}, {0, end}}
}

// resolvedDuration 跨午夜归一后的班次时长（分钟）。
// 22:00-05:00 → (1440-1320) + 300 = 420。
func resolvedDuration(start, end int) int {
	if start < end {
		return end - start
	}
	return (minutesPerDay - start) + end
}

// clockIntervalsOverlap 判断两组已归一区间是否相交：
// 任一子区间对满足 s1 < e2 && s2 < e1 即相交。
func clockIntervalsOverlap(a, b [][2]int) bool {
	for _, x := range a {
		for _, y := range b {
			if x[0] < y[1] && y[0] < x[1] {
				return true
			}
		}
	}
	return false
}

// instantsOverlap 判断两个绝对时间区间是否相交。
// 结束为空（记录未关闭）按 +∞ 处理。
func instantsOverlap(aStart time.Time, aEnd *time.Time, bStart time.Time, bEnd *time.Time) bool {
	aBeforeBEnd := bEnd == nil || aStart.Before(*bEnd)
	bBeforeAEnd := aEnd == nil || bStart.Before(*aEnd)
	return aBeforeBEnd && bBeforeAEnd
}
