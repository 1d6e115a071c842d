package xl

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/nfp"
)

// builtInNumFmt maps built-in numFmtId values (0-49) to their canonical
// format strings as defined by ECMA-376 §18.8.30. IDs not present here are
// built-in IDs whose format string is locale-dependent. Ported from
// TsubasaBE-go-xlsb's styles.BuiltInNumFmt table.
var builtInNumFmt = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	5:  `($#,##0_);($#,##0)`,
	6:  `($#,##0_);[Red]($#,##0)`,
	7:  `($#,##0.00_);($#,##0.00)`,
	8:  `($#,##0.00_);[Red]($#,##0.00)`,
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "MM-DD-YY",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: `(#,##0_);(#,##0)`,
	38: `(#,##0_);[Red](#,##0)`,
	39: `(#,##0.00_);(#,##0.00)`,
	40: `(#,##0.00_);[Red](#,##0.00)`,
	41: `_(* #,##0_);_(* (#,##0);_(* "-"_);_(@_)`,
	42: `_($* #,##0_);_($* (#,##0);_($* "-"_);_(@_)`,
	43: `_(* #,##0.00_);_(* (#,##0.00);_(* "-"??_);_(@_)`,
	44: `_($* #,##0.00_);_($* (#,##0.00);_($* "-"??_);_(@_)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mm:ss.0",
	48: "##0.0E+0",
	49: "@",
}

// builtInNumFmtCode returns the canonical format string for a built-in
// numFmtId, or "" with ok=false if id isn't one of the statically known
// built-ins (0-49 minus the locale-dependent gaps).
func builtInNumFmtCode(id int) (string, bool) {
	s, ok := builtInNumFmt[id]
	return s, ok
}

// normalizeNumberFormatCode trims incidental whitespace differences so two
// custom format codes that are semantically identical compare equal under
// XF.Equal (spec invariant 5), without attempting full format-string
// canonicalization.
func normalizeNumberFormatCode(code string) string {
	return strings.TrimSpace(code)
}

// isDateFormatID reports whether numFmtID (with optional custom fmtStr)
// represents a date/datetime/elapsed-time format, per ECMA-376's built-in ID
// ranges, falling back to scanning a custom format's unquoted date tokens.
// Ported from TsubasaBE-go-xlsb's styles.isDateFormatID.
func isDateFormatID(id int, fmtStr string) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	if id < 164 && id != 0 {
		return false
	}
	inDoubleQuote := false
	inBracket := false
	for _, ch := range fmtStr {
		switch {
		case inDoubleQuote:
			if ch == '"' {
				inDoubleQuote = false
			}
		case inBracket:
			if ch == ']' {
				inBracket = false
			}
		case ch == '"':
			inDoubleQuote = true
		case ch == '[':
			inBracket = true
		case ch == 'd' || ch == 'D' || ch == 'm' || ch == 'M' || ch == 'y' || ch == 'Y' || ch == 'h' || ch == 'H':
			return true
		}
	}
	return false
}

// FormatValue renders a cell's raw value (string, bool, or float64; nil for
// empty) to its Excel display string using numFmtID/fmtStr, matching
// TsubasaBE-go-xlsb's numfmt.FormatValue. date1904 selects the 1904 vs 1900
// epoch (workbook-level workbookPr/@date1904).
func FormatValue(v any, numFmtID int, fmtStr string, date1904 bool) string {
	effective := fmtStr
	if effective == "" {
		if s, ok := builtInNumFmtCode(numFmtID); ok {
			effective = s
		} else {
			effective = "General"
		}
	}

	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		return formatFloat(val, numFmtID, effective, date1904)
	default:
		return ""
	}
}

func formatFloat(val float64, numFmtID int, effective string, date1904 bool) string {
	if effective == "General" {
		return renderGeneral(val)
	}

	ps := nfp.NumberFormatParser()
	sections := ps.Parse(effective)
	if len(sections) == 0 {
		return renderGeneral(val)
	}

	sec := selectSection(sections, val)

	if isDateFormatID(numFmtID, effective) {
		return renderDateTime(val, sec, date1904)
	}
	return renderNumber(val, sec, sections)
}

func selectSection(sections []nfp.Section, val float64) nfp.Section {
	switch {
	case len(sections) == 1:
		return sections[0]
	case len(sections) == 2:
		if val < 0 {
			return sections[1]
		}
		return sections[0]
	default:
		switch {
		case val > 0:
			return sections[0]
		case val < 0:
			return sections[1]
		default:
			return sections[2]
		}
	}
}

func renderGeneral(val float64) string {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return strconv.FormatFloat(val, 'G', -1, 64)
	}
	if val == math.Trunc(val) && math.Abs(val) < 1e15 {
		return strconv.FormatInt(int64(val), 10)
	}
	return strconv.FormatFloat(val, 'G', -1, 64)
}

func renderDateTime(serial float64, sec nfp.Section, date1904 bool) string {
	t, err := convertSerial(serial, date1904)
	if err != nil {
		return renderGeneral(serial)
	}

	hasAmPm := false
	for _, tok := range sec.Items {
		if tok.TType == nfp.TokenTypeDateTimes {
			upper := strings.ToUpper(tok.TValue)
			if upper == "AM/PM" || upper == "A/P" {
				hasAmPm = true
				break
			}
		}
	}

	var sb strings.Builder
	lastWasHour := false

	for _, tok := range sec.Items {
		switch tok.TType {
		case nfp.TokenTypeDateTimes:
			upper := strings.ToUpper(tok.TValue)
			sb.WriteString(renderDateToken(upper, t, hasAmPm))
			lastWasHour = upper == "H" || upper == "HH"
		case nfp.TokenTypeElapsedDateTimes:
			upper := strings.ToUpper(tok.TValue)
			sb.WriteString(renderElapsed(upper, serial))
			lastWasHour = upper == "H" || upper == "HH"
		case nfp.TokenTypeLiteral:
			sb.WriteString(tok.TValue)
		default:
			lastWasHour = false
		}
		_ = lastWasHour
	}

	if sb.Len() == 0 {
		return renderGeneral(serial)
	}
	return sb.String()
}

func renderDateToken(upper string, t time.Time, hasAmPm bool) string {
	switch upper {
	case "YYYY":
		return strconv.Itoa(t.Year())
	case "YY":
		return pad2(t.Year() % 100)
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		return pad2(int(t.Month()))
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "DDDD":
		return t.Weekday().String()
	case "DDD":
		return t.Weekday().String()[:3]
	case "DD":
		return pad2(t.Day())
	case "D":
		return strconv.Itoa(t.Day())
	case "HH":
		h := t.Hour()
		if hasAmPm {
			h = h%12
			if h == 0 {
				h = 12
			}
		}
		return pad2(h)
	case "H":
		h := t.Hour()
		if hasAmPm {
			h = h % 12
			if h == 0 {
				h = 12
			}
		}
		return strconv.Itoa(h)
	case "SS":
		return pad2(t.Second())
	case "S":
		return strconv.Itoa(t.Second())
	case "AM/PM":
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	case "A/P":
		if t.Hour() < 12 {
			return "A"
		}
		return "P"
	}
	return ""
}

func renderElapsed(upper string, serial float64) string {
	switch upper {
	case "H", "HH":
		return strconv.Itoa(int(serial * 24))
	case "MM":
		return pad2(int(serial*24*60) % 60)
	case "M":
		return strconv.Itoa(int(serial*24*60) % 60)
	case "SS":
		return pad2(int(serial*24*3600) % 60)
	case "S":
		return strconv.Itoa(int(serial*24*3600) % 60)
	}
	return ""
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// convertSerial converts an Excel date serial to time.Time, honoring both
// the 1900 (with its intentional Feb-29-1900 leap bug) and 1904 epochs.
func convertSerial(serial float64, date1904 bool) (time.Time, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 0 {
		return time.Time{}, ErrInvalidArgument
	}
	fracSec := int64(math.Round((serial - math.Trunc(serial)) * 86400))
	if fracSec < 0 {
		fracSec = 0
	} else if fracSec > 86399 {
		fracSec = 86399
	}
	if date1904 {
		base := time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
		return base.Add(time.Duration(serial)*24*time.Hour + time.Duration(fracSec)*time.Second), nil
	}
	base := time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	intPart := int(serial)
	var t time.Time
	switch {
	case intPart == 0:
		t = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(fracSec) * time.Second)
	case intPart >= 61:
		t = base.Add(time.Duration(intPart-1)*24*time.Hour + time.Duration(fracSec)*time.Second)
	default:
		t = base.Add(time.Duration(intPart)*24*time.Hour + time.Duration(fracSec)*time.Second)
	}
	return t, nil
}

func renderNumber(val float64, sec nfp.Section, sections []nfp.Section) string {
	type meta struct {
		hasPercent      bool
		hasThousands    bool
		decZeros        int
		decHashes       int
		intZeros        int
		hasDecimal      bool
		hasExplicitSign bool
	}
	var m meta
	afterDecimal := false
	for _, tok := range sec.Items {
		switch tok.TType {
		case nfp.TokenTypePercent:
			m.hasPercent = true
		case nfp.TokenTypeThousandsSeparator:
			m.hasThousands = true
		case nfp.TokenTypeDecimalPoint:
			m.hasDecimal = true
			afterDecimal = true
		case nfp.TokenTypeZeroPlaceHolder:
			if afterDecimal {
				m.decZeros += len(tok.TValue)
			} else {
				m.intZeros += len(tok.TValue)
			}
		case nfp.TokenTypeHashPlaceHolder:
			if afterDecimal {
				m.decHashes += len(tok.TValue)
			}
		case nfp.TokenTypeLiteral:
			if tok.TValue == "+" || tok.TValue == "-" {
				m.hasExplicitSign = true
			}
		}
	}
	totalDecPlaces := m.decZeros + m.decHashes

	absVal := math.Abs(val)
	if m.hasPercent {
		absVal *= 100
	}

	var intStr, fracStr string
	if m.hasDecimal {
		formatted := strconv.FormatFloat(absVal, 'f', totalDecPlaces, 64)
		dotIdx := strings.IndexByte(formatted, '.')
		if dotIdx >= 0 {
			intStr = formatted[:dotIdx]
			fracStr = formatted[dotIdx+1:]
		} else {
			intStr = formatted
			fracStr = strings.Repeat("0", totalDecPlaces)
		}
		if m.decHashes > 0 && len(fracStr) > m.decZeros {
			trimTo := len(fracStr)
			for trimTo > m.decZeros && trimTo > 0 && fracStr[trimTo-1] == '0' {
				trimTo--
			}
			fracStr = fracStr[:trimTo]
		}
	} else {
		intStr = strconv.FormatFloat(absVal, 'f', 0, 64)
	}

	for len(intStr) < m.intZeros {
		intStr = "0" + intStr
	}

	if m.hasThousands && len(intStr) > 3 {
		intStr = insertThousandsSep(intStr)
	}

	needsMinus := false
	if val < 0 && !m.hasExplicitSign && len(sections) < 2 {
		needsMinus = true
	}

	var sb strings.Builder
	if needsMinus {
		sb.WriteByte('-')
	}

	intConsumed := false
	fracConsumed := false
	afterDecimal = false

	for _, tok := range sec.Items {
		switch tok.TType {
		case nfp.TokenTypeLiteral:
			sb.WriteString(tok.TValue)
		case nfp.TokenTypeDecimalPoint:
			if len(fracStr) > 0 {
				sb.WriteByte('.')
			}
			afterDecimal = true
		case nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder:
			if afterDecimal {
				if !fracConsumed {
					sb.WriteString(fracStr)
					fracConsumed = true
				}
			} else if !intConsumed {
				sb.WriteString(intStr)
				intConsumed = true
			}
		case nfp.TokenTypePercent:
			sb.WriteByte('%')
		}
	}

	if !intConsumed && !afterDecimal {
		sb.WriteString(intStr)
	}
	if sb.Len() == 0 {
		return renderGeneral(val)
	}
	return sb.String()
}

func insertThousandsSep(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(n + n/3)
	rem := n % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
