package service

import (
	"fmt"
	"time"

	"punchclock/backend/internal/model"
)

// 考勤记录校验规则 — 顺序 → 最短时长 → 最长时长 → 重叠。
// 每条规则独立返回判定结果，由记录创建/更新流程按固定顺序调用。

// Verdict 单条规则的判定结果
type Verdict struct {
	OK     bool
	Reason string
}

var verdictOK = Verdict{OK: true}

// validateTimeOrder 校验时序：下班时间不得早于上班时间。
// 跨午夜的日期修正由调用方在构造绝对时间时完成，此处不再补天。
func validateTimeOrder(entry time.Time, exit *time.Time) Verdict {
	if exit == nil {
		return verdictOK
	}
	if exit.Before(entry) {
		return Verdict{Reason: "下班时间不能早于上班时间"}
	}
	return verdictOK
}

// validateMinDuration 校验最短时长；记录未关闭时跳过。恰好等于下限通过。
func validateMinDuration(entry time.Time, exit *time.Time, minMinutes int) Verdict {
	if exit == nil {
		return verdictOK
	}
	if exit.Sub(entry) < time.Duration(minMinutes)*time.Minute {
		return Verdict{Reason: fmt.Sprintf("考勤记录时长不得少于 %d 分钟", minMinutes)}
	}
	return verdictOK
}

// validateMaxDuration 校验最长时长，拦截录入错误产生的离谱记录；恰好等于上限通过。
func validateMaxDuration(entry time.Time, exit *time.Time, maxHours int) Verdict {
	if exit == nil {
		return verdictOK
	}
	if exit.Sub(entry) > time.Duration(maxHours)*time.Hour {
		return Verdict{Reason: fmt.Sprintf("考勤记录时长不得超过 %d 小时", maxHours)}
	}
	return verdictOK
}

// OverlapResult 重叠检测结果，冲突时携带冲突记录。
type OverlapResult struct {
	HasOverlap bool
	Conflict   *model.TimeRecord
}

// checkOverlap 检测新记录与同一用户同参考日已有记录的时段重叠。
// 未关闭记录（无下班时间）按延伸至 +∞ 处理；检测满足对称性。
func checkOverlap(entry time.Time, exit *time.Time, existing []model.TimeRecord) OverlapResult {
	for i := range existing {
		reg := &existing[i]
		if instantsOverlap(entry, exit, reg.EntryAt, reg.ExitAt) {
			return OverlapResult{HasOverlap: true, Conflict: reg}
		}
	}
	return OverlapResult{}
}
