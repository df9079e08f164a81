// Package importer implementa la importación y exportación CSV de las colecciones:
// cada fila se parsea y valida hasta un registro tipado; las filas inválidas se rechazan
// con su número de línea sin bloquear el resto.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/merchbydz/backoffice/internal/domain"
)

var (
	ErrEmptyFile     = fmt.Errorf("%w: archivo CSV vacío", domain.ErrInvalidInput)
	ErrMissingHeader = fmt.Errorf("%w: falta la fila de cabecera", domain.ErrInvalidInput)
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// row fila de datos con su número de línea en el archivo (la cabecera es la línea 1).
type row struct {
	line   int
	values map[string]string
}

func (r row) empty() bool {
	for _, v := range r.values {
		if v != "" {
			return false
		}
	}
	return true
}

// parser lector CSV tolerante con exportaciones de hojas de cálculo: quita el BOM,
// decodifica Windows-1252 cuando el contenido no es UTF-8 válido y detecta el
// separador (',' ';' o tabulador) a partir de la cabecera.
type parser struct {
	reader  *csv.Reader
	headers []string
}

func newParser(data []byte) (*parser, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("%w: codificación no soportada", domain.ErrInvalidInput)
		}
		data = decoded
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = detectDelimiter(data)
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("%w: cabecera ilegible: %v", domain.ErrInvalidInput, err)
	}
	p := &parser{reader: r, headers: make([]string, len(header))}
	for i, h := range header {
		p.headers[i] = normalizeHeader(h)
	}
	return p, nil
}

// next devuelve io.EOF al terminar. Un *csv.ParseError afecta solo a esa fila.
func (p *parser) next() (row, error) {
	record, err := p.reader.Read()
	if err != nil {
		return row{}, err
	}
	line, _ := p.reader.FieldPos(0)
	out := row{line: line, values: make(map[string]string, len(p.headers))}
	for i, h := range p.headers {
		if h == "" {
			continue
		}
		if i < len(record) {
			out.values[h] = strings.TrimSpace(record[i])
		} else {
			out.values[h] = ""
		}
	}
	return out, nil
}

func detectDelimiter(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	best, count := ',', bytes.Count(first, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(first, []byte(string(d))); n > count {
			best, count = d, n
		}
	}
	return best
}

// normalizeHeader "Sale Price" / "sale-price" → "sale_price".
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}
