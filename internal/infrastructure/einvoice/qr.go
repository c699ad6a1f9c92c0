package einvoice

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/jhoicas/gasable-portal/internal/domain/entity"
)

// Etiquetas TLV del QR de factura simplificada.
const (
	tagSeller    byte = 1
	tagVATNumber byte = 2
	tagTimestamp byte = 3
	tagTotal     byte = 4
	tagVAT       byte = 5
)

// QR codifica nombre del emisor, número de IVA, fecha, total y total de IVA en TLV base64.
func QR(seller *entity.Company, inv *entity.Invoice) (string, error) {
	vat := ""
	if seller.VATNumber != nil {
		vat = *seller.VATNumber
	}
	fields := []struct {
		tag   byte
		value string
	}{
		{tagSeller, legalName(seller)},
		{tagVATNumber, vat},
		{tagTimestamp, inv.IssuedAt.UTC().Format(time.RFC3339)},
		{tagTotal, inv.TotalAmount.StringFixed(2)},
		{tagVAT, inv.VATAmount.StringFixed(2)},
	}

	var buf []byte
	for _, f := range fields {
		if len(f.value) > 255 {
			return "", fmt.Errorf("einvoice: campo TLV %d excede 255 bytes", f.tag)
		}
		buf = append(buf, f.tag, byte(len(f.value)))
		buf = append(buf, f.value...)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// DecodeQR decodifica el TLV (etiqueta -> valor).
func DecodeQR(encoded string) (map[byte]string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("einvoice: QR no es base64: %w", err)
	}
	out := map[byte]string{}
	for i := 0; i < len(raw); {
		if i+2 > len(raw) {
			return nil, fmt.Errorf("einvoice: TLV truncado")
		}
		tag, n := raw[i], int(raw[i+1])
		i += 2
		if i+n > len(raw) {
			return nil, fmt.Errorf("einvoice: TLV truncado en etiqueta %d", tag)
		}
		out[tag] = string(raw[i : i+n])
		i += n
	}
	return out, nil
}
