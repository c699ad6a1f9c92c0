// Package taxid valida los identificadores fiscales saudíes que aparecen en el perfil del
// proveedor y en las facturas.
package taxid

import (
	"fmt"
	"unicode"
)

const (
	vatLength = 15
	crLength  = 10
)

// ValidateVATNumber número de registro de IVA (ZATCA): 15 dígitos, empieza y termina en 3.
// Acepta espacios o guiones de separación.
func ValidateVATNumber(s string) error {
	digits, err := onlyDigits(s)
	if err != nil {
		return err
	}
	if len(digits) != vatLength {
		return fmt.Errorf("taxid: el número de IVA debe tener %d dígitos, se encontraron %d", vatLength, len(digits))
	}
	if digits[0] != '3' || digits[vatLength-1] != '3' {
		return fmt.Errorf("taxid: el número de IVA debe empezar y terminar en 3")
	}
	return nil
}

// ValidateCRNumber registro comercial: 10 dígitos.
func ValidateCRNumber(s string) error {
	digits, err := onlyDigits(s)
	if err != nil {
		return err
	}
	if len(digits) != crLength {
		return fmt.Errorf("taxid: el registro comercial debe tener %d dígitos, se encontraron %d", crLength, len(digits))
	}
	return nil
}

// Normalize deja solo los dígitos.
func Normalize(s string) string {
	d, _ := onlyDigits(s)
	return string(d)
}

func onlyDigits(s string) ([]byte, error) {
	var out []byte
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			out = append(out, byte(r))
		case r == ' ' || r == '-':
		case unicode.IsDigit(r):
			return nil, fmt.Errorf("taxid: dígito no ASCII %q", r)
		default:
			return nil, fmt.Errorf("taxid: carácter inválido %q", r)
		}
	}
	return out, nil
}
