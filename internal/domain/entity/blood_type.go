package entity

import (
	"fmt"
	"strings"
)

// BloodType tipo sanguíneo (enumeración cerrada de 8 valores).
type BloodType string

const (
	BloodTypeOPositive  BloodType = "O+"
	BloodTypeONegative  BloodType = "O-"
	BloodTypeAPositive  BloodType = "A+"
	BloodTypeANegative  BloodType = "A-"
	BloodTypeBPositive  BloodType = "B+"
	BloodTypeBNegative  BloodType = "B-"
	BloodTypeABPositive BloodType = "AB+"
	BloodTypeABNegative BloodType = "AB-"
)

// BloodTypes lista los 8 tipos válidos, en el orden usado en reportes.
var BloodTypes = []BloodType{
	BloodTypeOPositive, BloodTypeONegative,
	BloodTypeAPositive, BloodTypeANegative,
	BloodTypeBPositive, BloodTypeBNegative,
	BloodTypeABPositive, BloodTypeABNegative,
}

// ParseBloodType normaliza (mayúsculas, sin espacios) y valida el tipo sanguíneo.
func ParseBloodType(s string) (BloodType, error) {
	bt := BloodType(strings.ToUpper(strings.TrimSpace(s)))
	switch bt {
	case BloodTypeOPositive, BloodTypeONegative,
		BloodTypeAPositive, BloodTypeANegative,
		BloodTypeBPositive, BloodTypeBNegative,
		BloodTypeABPositive, BloodTypeABNegative:
		return bt, nil
	}
	return "", fmt.Errorf("tipo sanguíneo inválido: %q", s)
}

func (b BloodType) String() string { return string(b) }
