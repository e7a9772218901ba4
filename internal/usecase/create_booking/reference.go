package create_booking

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const referencePrefix = "VB"

// newReference генерирует уникальный человекочитаемый номер бронирования
// в формате VB-XXXXXXXXXXXX (12 hex-символов)
func newReference() string {
	id := uuid.New()
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return fmt.Sprintf("%s-%s", referencePrefix, hex[:12])
}
