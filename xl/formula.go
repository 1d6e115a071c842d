package xl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/efp"
)

// ShiftFormula adjusts every relative cell/range reference in a shared
// formula's master expression by the offset between originRef and
// targetRef, producing the expression for one member cell of the group.
// Shared-formula groups are expanded eagerly on read instead of being
// re-grouped on write (spec §4.5/§9): this is the simplest correct
// behavior, at the documented cost of losing the file's own grouping as an
// OOXML size optimization.
//
// Tokenizing with efp rather than a bare regexp means references that
// appear inside string literals or quoted sheet names are never mistaken
// for bare cell refs. Reassembly writes the token values back in order and
// restores what efp leaves out of them: the parentheses of function calls
// and subexpressions, and the double quotes (with inner quotes doubled) of
// string literals.
func ShiftFormula(formula, originRef, targetRef string) (string, error) {
	oc, or, err := ParseCellRef(originRef)
	if err != nil {
		return "", err
	}
	tc, tr, err := ParseCellRef(targetRef)
	if err != nil {
		return "", err
	}
	dCol, dRow := tc-oc, tr-or
	if dCol == 0 && dRow == 0 {
		return formula, nil
	}

	p := efp.ExcelParser()
	tokens := p.Parse(formula)
	var b strings.Builder
	for _, tok := range tokens {
		switch {
		case tok.TType == efp.TokenTypeOperand && tok.TSubType == efp.TokenSubTypeRange:
			shifted, err := shiftRangeToken(tok.TValue, dCol, dRow)
			if err != nil {
				return "", err
			}
			b.WriteString(shifted)
		case tok.TType == efp.TokenTypeOperand && tok.TSubType == efp.TokenSubTypeText:
			b.WriteString(`"` + strings.ReplaceAll(tok.TValue, `"`, `""`) + `"`)
		case tok.TType == efp.TokenTypeFunction && tok.TSubType == efp.TokenSubTypeStart:
			b.WriteString(tok.TValue + "(")
		case tok.TType == efp.TokenTypeSubexpression && tok.TSubType == efp.TokenSubTypeStart:
			b.WriteString("(")
		case (tok.TType == efp.TokenTypeFunction || tok.TType == efp.TokenTypeSubexpression) && tok.TSubType == efp.TokenSubTypeStop:
			b.WriteString(")")
		default:
			b.WriteString(tok.TValue)
		}
	}
	return b.String(), nil
}

// shiftRangeToken shifts a single range operand, which may carry a sheet
// prefix ("Sheet1!A1") and a range colon ("A1:B2"), each side shifted
// independently since $ anchors apply per-coordinate, not per-range.
func shiftRangeToken(ref string, dCol, dRow int) (string, error) {
	sheetPrefix := ""
	if i := strings.LastIndex(ref, "!"); i >= 0 {
		sheetPrefix, ref = ref[:i+1], ref[i+1:]
	}
	parts := strings.SplitN(ref, ":", 2)
	shifted := make([]string, len(parts))
	for i, part := range parts {
		s, err := shiftCellToken(part, dCol, dRow)
		if err != nil {
			return "", err
		}
		shifted[i] = s
	}
	return sheetPrefix + strings.Join(shifted, ":"), nil
}

// shiftCellToken shifts one "A1"/"$A1"/"A$1"/"$A$1"-style coordinate.
func shiftCellToken(ref string, dCol, dRow int) (string, error) {
	colAbs := strings.HasPrefix(ref, "$")
	if colAbs {
		ref = ref[1:]
	}
	i := 0
	for i < len(ref) && ((ref[i] >= 'A' && ref[i] <= 'Z') || (ref[i] >= 'a' && ref[i] <= 'z')) {
		i++
	}
	colLetters, rest := ref[:i], ref[i:]
	rowAbs := strings.HasPrefix(rest, "$")
	if rowAbs {
		rest = rest[1:]
	}
	col, err := ParseColumnLetters(colLetters)
	if err != nil {
		return "", fmt.Errorf("%w: shared formula reference %q: %v", ErrMalformedXML, ref, err)
	}
	row, err := strconv.Atoi(rest)
	if err != nil {
		return "", fmt.Errorf("%w: shared formula reference %q: %v", ErrMalformedXML, ref, err)
	}
	if !colAbs {
		col += dCol
	}
	if !rowAbs {
		row += dRow
	}
	if col < 1 || row < 1 {
		return "", fmt.Errorf("%w: shared formula shift produced an out-of-range reference", ErrMalformedXML)
	}
	out := ColumnNumberAsLetters(col)
	if colAbs {
		out = "$" + out
	}
	rowOut := strconv.Itoa(row)
	if rowAbs {
		rowOut = "$" + rowOut
	}
	return out + rowOut, nil
}
