// Package numbering asigna el siguiente número legible de factura ("INV-001", "INV-002", …).
package numbering

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Prefix de los números generados.
const Prefix = "INV-"

var pattern = regexp.MustCompile(`(?i)^INV-(\d+)$`)

// Parse devuelve el sufijo numérico de un número de factura; ok=false si no tiene el formato.
func Parse(number string) (n int, ok bool) {
	m := pattern.FindStringSubmatch(strings.TrimSpace(number))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Format produce "INV-NNN" con al menos tres dígitos; más allá de 999 se ensancha.
func Format(n int) string {
	return fmt.Sprintf("%s%03d", Prefix, n)
}

// Next devuelve max(sufijo)+1 entre los números existentes, ignorando los que no tienen formato.
// Con el conjunto vacío devuelve INV-001.
func Next(existing []string) string {
	max := 0
	for _, num := range existing {
		if n, ok := Parse(num); ok && n > max {
			max = n
		}
	}
	return Format(max + 1)
}
