package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var dateLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006", "02-01-2006", "2006/01/02"}

// parseDate acepta ISO y el formato día/mes/año de las hojas de cálculo en francés.
func parseDate(s string) (string, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("fecha %q no reconocida", s)
}

// parseAmount normaliza montos como "1 200,50", "1.200,50", "1,200.50", "15.000", "2500 DA".
// Con un único tipo de separador, coma y punto se tratan igual: si agrupan de a 3 dígitos
// ("15.000", "1,200", "1.234.567") son separadores de miles; si no, es el decimal ("12,5").
// Varios separadores mal agrupados ("1.2.3") se rechazan.
func parseAmount(s string) (string, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\'':
			return -1
		}
		return r
	}, s)
	for _, suffix := range []string{"DZD", "DA", "dzd", "da"} {
		clean = strings.TrimSuffix(clean, suffix)
	}

	lastComma, lastDot := strings.LastIndex(clean, ","), strings.LastIndex(clean, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastComma >= 0 || lastDot >= 0:
		sep := ","
		if lastDot >= 0 {
			sep = "."
		}
		switch {
		case thousandsGrouped(clean, sep):
			clean = strings.ReplaceAll(clean, sep, "")
		case strings.Count(clean, sep) > 1:
			return "", fmt.Errorf("monto %q inválido", s)
		default:
			clean = strings.Replace(clean, sep, ".", 1)
		}
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return "", fmt.Errorf("monto %q inválido", s)
	}
	return d.String(), nil
}

// thousandsGrouped: primer grupo de 1 a 3 dígitos sin cero inicial, el resto de 3.
func thousandsGrouped(s, sep string) bool {
	s = strings.TrimLeft(s, "+-")
	groups := strings.Split(s, sep)
	if len(groups) < 2 || len(groups[0]) == 0 || len(groups[0]) > 3 || groups[0][0] == '0' {
		return false
	}
	for i, g := range groups {
		if i > 0 && len(g) != 3 {
			return false
		}
		for _, r := range g {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

func parseInteger(s string) (int, error) {
	n, err := strconv.Atoi(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		return 0, fmt.Errorf("entero %q inválido", s)
	}
	return n, nil
}
