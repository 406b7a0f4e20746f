package query

import "strings"

// Korean decimal magnitude words used in shorthand amounts.
var koreanMagnitudes = map[rune]int64{
	'조': 1_000_000_000_000,
	'억': 100_000_000,
	'만': 10_000,
	'천': 1_000,
	'백': 100,
}

// ParseKoreanAmount parses Korean-magnitude numeric shorthand such as
// "3억 5천만", "1,500만원" or plain "150000000" into a won amount.
//
// The input is a sequence of <digits><magnitude>? tokens, optionally
// whitespace-separated. 천/백 accumulate inside the current 만/억/조 group,
// so "5천만" reads as (5×1000)×10⁴. A trailing 원 marker and thousands
// separators are stripped before tokenizing.
//
// Returns ok=false when the string holds no digits at all. Callers must
// treat that as "ignore this bound", not as zero.
func ParseKoreanAmount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "원")
	s = strings.ReplaceAll(s, ",", "")

	var (
		total     int64
		group     int64 // value accumulated below the next 만/억/조 unit
		num       int64 // current digit run
		hasDigits bool
	)

	flushBig := func(mag int64) {
		group = (group + num) * mag
		total += group
		group = 0
		num = 0
	}

	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int64(r-'0')
			hasDigits = true
		case r == '천' || r == '백':
			group += num * koreanMagnitudes[r]
			num = 0
		case r == '만' || r == '억' || r == '조':
			flushBig(koreanMagnitudes[r])
		case r == ' ' || r == '\t':
			// token separator
		default:
			// unknown rune: skip. A fully unparseable string still ends
			// with hasDigits == false.
		}
	}

	if !hasDigits {
		return 0, false
	}

	return total + group + num, true
}
