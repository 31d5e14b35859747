package service

import (
	"math"
	"time"

	"punchclock/backend/internal/model"
)

// 状态分类与工时结算 — 纯函数层。
// 输入为匹配班次、上/下班绝对时间、暂离总分钟与容差配置；
// 输出为入/离场状态、净结余与判定明细。

// CandidateShift 候选班次的内部统一表示。
// 班次数据来自两张形状不同的外部表（usuario_turnos 与 colaborador_clientes），
// 在边界处统一适配为该类型，匹配与分类核心只见一种表示。
type CandidateShift struct {
	ShiftID     string
	StartMinute int
	EndMinute   int
	ClientID    *string
}

// shiftFromModel 适配班次表记录。
func shiftFromModel(s *model.Shift) (CandidateShift, error) {
	start, err := parseClock(s.StartTime)
	if err != nil {
		return CandidateShift{}, err
	}
	end, err := parseClock(s.EndTime)
	if err != nil {
		return CandidateShift{}, err
	}
	return CandidateShift{ShiftID: s.ShiftID, StartMinute: start, EndMinute: end, ClientID: s.ClientID}, nil
}

// shiftFromLink 适配派驻链接记录（内嵌班次时段）。
func shiftFromLink(l *model.ClientLink) (CandidateShift, error) {
	start, err := parseClock(l.StartTime)
	if err != nil {
		return CandidateShift{}, err
	}
	end, err := parseClock(l.EndTime)
	if err != nil {
		return CandidateShift{}, err
	}
	clientID := l.ClientID
	return CandidateShift{ShiftID: l.LinkID, StartMinute: start, EndMinute: end, ClientID: &clientID}, nil
}

// matchShift 在候选班次集中选出预期开始时刻与入场时刻距离最小的班次。
// 距离相同保留先遇到者；候选集为空时无匹配，下游降级为 unclassified。
// 同一输入重复匹配结果不变。
func matchShift(entryMinute int, shifts []CandidateShift) (CandidateShift, bool) {
	if len(shifts) == 0 {
		return CandidateShift{}, false
	}
	best := shifts[0]
	bestDist := absInt(entryMinute - best.StartMinute)
	for _, s := range shifts[1:] {
		if d := absInt(entryMinute - s.StartMinute); d < bestDist {
			best = s
			bestDist = d
		}
	}
	return best, true
}

// ToleranceConfig 考勤容差阈值（分钟）
type ToleranceConfig struct {
	EntryGreen    int // 入场绿色容差
	EntryYellow   int // 入场黄色容差
	ExitTolerance int // 离场容差
	OvertimeLimit int // 加班上限
}

// earlyDepartureMinutes 提前离场判定阈值：早于预期下班超过 10 分钟。
const earlyDepartureMinutes = 10

// Evaluation 一次考勤判定的完整输出
type Evaluation struct {
	EntryStatus    string
	ExitStatus     string
	BalanceMinutes *int
	Detail         model.CalcDetail
}

// evaluateRecord 对一条考勤记录做状态分类与结余计算。
//
//   - 入场：diff = 入场分钟 - 班次开始分钟。diff ≤ 绿色容差 → on_time；
//     diff > 黄色容差 → late；两者之间 → warning。无匹配班次 → unclassified。
//   - 离场：将实际下班相对上班、班次结束相对班次开始分别做跨午夜修正后求
//     diffExit。> 加班上限 → excessive_overtime；> 离场容差 → warning；
//     < -10 → early_departure；否则 on_time。
//   - 结余 = (实际工时 - 暂离分钟) - 班次预期时长，四舍五入到分钟；
//     无下班时间或无匹配班次时为空。
func evaluateRecord(shift *CandidateShift, entry time.Time, exit *time.Time, pauseMinutes int, tol ToleranceConfig, loc *time.Location) Evaluation {
	ev := Evaluation{
		EntryStatus: model.EntryUnclassified,
		ExitStatus:  model.ExitUnclassified,
		Detail: model.CalcDetail{
			EntryGreen:    tol.EntryGreen,
			EntryYellow:   tol.EntryYellow,
			ExitTolerance: tol.ExitTolerance,
			OvertimeLimit: tol.OvertimeLimit,
			PauseMinutes:  pauseMinutes,
		},
	}

	if exit != nil {
		worked := roundMinutes(exit.Sub(entry)) - pauseMinutes
		ev.Detail.WorkedDuration = formatClock(absInt(worked))
	}

	if shift == nil {
		// 无班次基线：状态降级，结余无法计算
		return ev
	}

	ev.Detail.ShiftID = &shift.ShiftID
	ev.Detail.ShiftStart = formatClock(shift.StartMinute)
	ev.Detail.ShiftEnd = formatClock(shift.EndMinute)

	// ── 入场状态 ──
	entryMinute := minuteOfDay(entry, loc)
	diff := entryMinute - shift.StartMinute
	ev.Detail.EntryDiffMinutes = &diff

	switch {
	case diff <= tol.EntryGreen:
		ev.EntryStatus = model.EntryOnTime
	case diff > tol.EntryYellow:
		ev.EntryStatus = model.EntryLate
	default:
		ev.EntryStatus = model.EntryWarning
	}

	if exit == nil {
		return ev
	}

	// ── 离场状态与结余 ──
	// 预期上/下班锚定在入场当日；班次结束分钟不大于开始分钟时补一天，
	// 保证预期下班严格晚于预期上班（与实际下班晚于实际上班的修正相互独立）。
	lt := entry.In(loc)
	dayStart := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	expectedStart := dayStart.Add(time.Duration(shift.StartMinute) * time.Minute)
	expectedExit := dayStart.Add(time.Duration(shift.EndMinute) * time.Minute)
	if shift.EndMinute <= shift.StartMinute {
		expectedExit = expectedExit.Add(24 * time.Hour)
	}

	diffExit := roundMinutes(exit.Sub(expectedExit))
	ev.Detail.ExitDiffMinutes = &diffExit

	switch {
	case diffExit > tol.OvertimeLimit:
		ev.ExitStatus = model.ExitExcessiveOvertime
	case diffExit > tol.ExitTolerance:
		ev.ExitStatus = model.ExitWarning
	case diffExit < -earlyDepartureMinutes:
		ev.ExitStatus = model.ExitEarlyDeparture
	default:
		ev.ExitStatus = model.ExitOnTime
	}

	worked := roundMinutes(exit.Sub(entry)) - pauseMinutes
	expected := roundMinutes(expectedExit.Sub(expectedStart))
	balance := worked - expected
	ev.BalanceMinutes = &balance

	return ev
}

// roundMinutes 将时长四舍五入为分钟数。
func roundMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
