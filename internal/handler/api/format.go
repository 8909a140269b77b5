package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Stella-M-560/currency-bot-api/internal/domain/models"
)

func formatConversion(r models.ConversionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s = %s %s\n", formatAmount(r.Amount), r.From, r.Converted.StringFixed(2), r.To)
	fmt.Fprintf(&b, "汇率：1 %s = %s %s", r.From, formatRate(r.Rate), r.To)
	if !r.Date.IsZero() {
		fmt.Fprintf(&b, "（%s）", r.Date)
	}
	b.WriteString("\n")
	return b.String()
}

func formatHistory(h models.HistoryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s 历史汇率（%s）\n", pairLabel(h.From, h.To), h.Requested.Label)
	fmt.Fprintf(&b, "区间：%s 至 %s，共 %d 个数据点\n", h.Effective.Start, h.Effective.End, h.Points)

	switch h.Source {
	case models.SourceTriangulated:
		fmt.Fprintf(&b, "注：直接数据不足，已通过 %s 交叉换算\n", h.Pivot)
	case models.SourceReduced:
		fmt.Fprintf(&b, "注：%s 数据不足，已缩短为%s\n", h.Requested.Label, h.Effective.Label)
	}

	if h.Report.Empty {
		b.WriteString("\n该区间内没有可用数据\n")
		return b.String()
	}

	b.WriteString("\n年份\t最低\t最高\t平均\t波动\n")
	for _, y := range h.Report.Years {
		fmt.Fprintf(&b, "%d\t%s\t%s\t%s\t%s\n",
			y.Year, formatRate(y.Min), formatRate(y.Max), formatRate(y.Avg), formatPct(y.Volatility))
	}

	o := h.Report.Overall
	b.WriteString("\n")
	fmt.Fprintf(&b, "整体：最低 %s（%d年），最高 %s（%d年），平均 %s，波动 %s\n",
		formatRate(o.Min), o.MinYear, formatRate(o.Max), o.MaxYear, formatRate(o.Avg), formatPct(o.Volatility))
	fmt.Fprintf(&b, "区间变化：%s %s → %s %s（%s）\n",
		o.First.Date, formatRate(o.First.Rate), o.Last.Date, formatRate(o.Last.Rate), formatSignedPct(o.ChangePct))
	return b.String()
}

func formatHistoryUnavailable(h models.HistoryResult, phrase string, status int) string {
	var b strings.Builder
	label := h.Requested.Label
	if label == "" {
		label = phrase
	}
	if status == http.StatusServiceUnavailable {
		fmt.Fprintf(&b, "抱歉，%s 在%s内的历史数据不足，无法生成统计。\n", pairLabel(h.From, h.To), label)
	} else {
		fmt.Fprintf(&b, "抱歉，汇率服务暂时不可用，无法获取 %s 的历史数据（%s）。\n", pairLabel(h.From, h.To), label)
	}
	b.WriteString("可以尝试：\n")
	b.WriteString("· 缩短时间范围，例如 range=过去1年 或 range=过去3个月\n")
	b.WriteString("· 查询主要货币对，例如 USD/CNY、EUR/USD、USD/JPY\n")
	if status != http.StatusServiceUnavailable {
		b.WriteString("· 稍后再试\n")
	}
	return b.String()
}

func formatConvertUnavailable(from, to string) string {
	return fmt.Sprintf("抱歉，汇率服务暂时不可用，无法换算 %s → %s，请稍后再试\n", from, to)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatRate keeps four decimals, more for very small rates.
func formatRate(v float64) string {
	if v != 0 && v < 0.01 {
		return strconv.FormatFloat(v, 'f', 6, 64)
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

func formatSignedPct(v float64) string {
	if v > 0 {
		return "+" + formatPct(v)
	}
	return formatPct(v)
}
