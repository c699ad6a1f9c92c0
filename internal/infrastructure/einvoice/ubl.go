// Package einvoice exporta facturas como UBL 2.1 (perfil de facturación electrónica saudí)
// con hash canónico (C14N + SHA-256) y el código QR TLV de la factura simplificada.
package einvoice

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/gasable-portal/internal/application/billing"
	"github.com/jhoicas/gasable-portal/internal/domain/entity"
)

// Namespaces UBL 2.1.
const (
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	NsExt     = "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
)

const (
	profileID       = "reporting:1.0"
	invoiceTypeCode = "388"
	// Subtipo: 01 = estándar (B2B, comprador con número de IVA), 02 = simplificada (B2C).
	subtypeStandard   = "0100000"
	subtypeSimplified = "0200000"
	vatCategoryCode   = "S"
	defaultCurrency   = "SAR"
)

// Builder construye el XML UBL de una factura del proveedor.
type Builder struct{}

var _ billing.InvoiceXMLBuilder = (*Builder)(nil)

// NewBuilder crea el builder.
func NewBuilder() *Builder { return &Builder{} }

// Build genera el documento, su hash (base64 de SHA-256 sobre C14N) y el QR.
func (b *Builder) Build(inv *entity.Invoice, seller *entity.Company) (*billing.EDocument, error) {
	if inv == nil || seller == nil {
		return nil, fmt.Errorf("einvoice: faltan factura o emisor")
	}
	doc := b.document(inv, seller)
	doc.Indent(2)
	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("einvoice: serializar XML: %w", err)
	}
	hash, err := Hash(body)
	if err != nil {
		return nil, err
	}
	qr, err := QR(seller, inv)
	if err != nil {
		return nil, err
	}
	raw := append([]byte(xml.Header), body...)
	return &billing.EDocument{XML: raw, Hash: hash, QR: qr}, nil
}

// Hash canonicaliza el XML (C14N) y devuelve su SHA-256 en base64. Se calcula sobre el
// elemento raíz, sin la declaración XML.
func Hash(xmlBytes []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("einvoice: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func (b *Builder) document(inv *entity.Invoice, seller *entity.Company) *etree.Document {
	currency := inv.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	doc := etree.NewDocument()
	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", NsInvoice)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)
	root.CreateAttr("xmlns:ext", NsExt)

	cbc(root, "ProfileID", profileID)
	cbc(root, "ID", inv.InvoiceNumber)
	cbc(root, "UUID", inv.ID)
	cbc(root, "IssueDate", inv.IssuedAt.UTC().Format("2006-01-02"))
	cbc(root, "IssueTime", inv.IssuedAt.UTC().Format("15:04:05"))
	typeCode := cbc(root, "InvoiceTypeCode", invoiceTypeCode)
	typeCode.CreateAttr("name", subtype(inv))
	cbc(root, "DocumentCurrencyCode", currency)
	cbc(root, "TaxCurrencyCode", currency)
	if inv.DueDate != nil {
		cbc(root, "DueDate", inv.DueDate.UTC().Format("2006-01-02"))
	}
	if inv.OrderID != nil {
		ref := root.CreateElement("cac:OrderReference")
		cbc(ref, "ID", *inv.OrderID)
	}

	supplier := root.CreateElement("cac:AccountingSupplierParty").CreateElement("cac:Party")
	if seller.CRNumber != nil {
		id := supplier.CreateElement("cac:PartyIdentification")
		cbc(id, "ID", *seller.CRNumber).CreateAttr("schemeID", "CRN")
	}
	address(supplier, seller.Address, seller.City)
	partyTax(supplier, seller.VATNumber)
	legal := supplier.CreateElement("cac:PartyLegalEntity")
	cbc(legal, "RegistrationName", legalName(seller))

	customer := root.CreateElement("cac:AccountingCustomerParty").CreateElement("cac:Party")
	partyTax(customer, inv.CustomerVATNumber)
	cbc(customer.CreateElement("cac:PartyLegalEntity"), "RegistrationName", inv.CustomerName)

	taxTotal := root.CreateElement("cac:TaxTotal")
	amount(taxTotal, "TaxAmount", inv.VATAmount, currency)
	for _, g := range vatGroups(inv.Items) {
		sub := taxTotal.CreateElement("cac:TaxSubtotal")
		amount(sub, "TaxableAmount", g.taxable, currency)
		amount(sub, "TaxAmount", g.tax, currency)
		category(sub.CreateElement("cac:TaxCategory"), g.rate)
	}

	totals := root.CreateElement("cac:LegalMonetaryTotal")
	amount(totals, "LineExtensionAmount", inv.Subtotal, currency)
	amount(totals, "TaxExclusiveAmount", inv.Subtotal, currency)
	amount(totals, "TaxInclusiveAmount", inv.TotalAmount, currency)
	amount(totals, "PayableAmount", inv.TotalAmount, currency)

	for i, it := range inv.Items {
		line := root.CreateElement("cac:InvoiceLine")
		cbc(line, "ID", fmt.Sprint(i+1))
		cbc(line, "InvoicedQuantity", it.Quantity.String()).CreateAttr("unitCode", "PCE")
		amount(line, "LineExtensionAmount", it.Total, currency)
		lineTax := line.CreateElement("cac:TaxTotal")
		amount(lineTax, "TaxAmount", lineVAT(it), currency)
		amount(lineTax, "RoundingAmount", it.Total.Add(lineVAT(it)), currency)
		item := line.CreateElement("cac:Item")
		cbc(item, "Name", it.Description)
		category(item.CreateElement("cac:ClassifiedTaxCategory"), it.VATRate)
		amount(line.CreateElement("cac:Price"), "PriceAmount", it.UnitPrice, currency)
	}
	return doc
}

func cbc(parent *etree.Element, name, value string) *etree.Element {
	el := parent.CreateElement("cbc:" + name)
	el.SetText(value)
	return el
}

func amount(parent *etree.Element, name string, v decimal.Decimal, currency string) {
	cbc(parent, name, v.StringFixed(2)).CreateAttr("currencyID", currency)
}

func category(el *etree.Element, rate decimal.Decimal) {
	cbc(el, "ID", vatCategoryCode)
	cbc(el, "Percent", rate.StringFixed(2))
	cbc(el.CreateElement("cac:TaxScheme"), "ID", "VAT")
}

func address(party *etree.Element, street, city *string) {
	if street == nil && city == nil {
		return
	}
	addr := party.CreateElement("cac:PostalAddress")
	if street != nil {
		cbc(addr, "StreetName", *street)
	}
	if city != nil {
		cbc(addr, "CityName", *city)
	}
	cbc(addr.CreateElement("cac:Country"), "IdentificationCode", "SA")
}

func partyTax(party *etree.Element, vat *string) {
	if vat == nil || *vat == "" {
		return
	}
	scheme := party.CreateElement("cac:PartyTaxScheme")
	cbc(scheme, "CompanyID", *vat)
	cbc(scheme.CreateElement("cac:TaxScheme"), "ID", "VAT")
}

func legalName(c *entity.Company) string {
	if c.LegalName != nil && *c.LegalName != "" {
		return *c.LegalName
	}
	return c.Name
}

func subtype(inv *entity.Invoice) string {
	if inv.CustomerVATNumber != nil && *inv.CustomerVATNumber != "" {
		return subtypeStandard
	}
	return subtypeSimplified
}

func lineVAT(it entity.InvoiceItem) decimal.Decimal {
	return it.Total.Mul(it.VATRate).Div(decimal.NewFromInt(100)).Round(2)
}

type vatGroup struct {
	rate    decimal.Decimal
	taxable decimal.Decimal
	tax     decimal.Decimal
}

// vatGroups agrupa las líneas por tasa en orden de aparición.
func vatGroups(items []entity.InvoiceItem) []vatGroup {
	var groups []vatGroup
	for _, it := range items {
		idx := -1
		for i := range groups {
			if groups[i].rate.Equal(it.VATRate) {
				idx = i
				break
			}
		}
		if idx < 0 {
			groups = append(groups, vatGroup{rate: it.VATRate})
			idx = len(groups) - 1
		}
		groups[idx].taxable = groups[idx].taxable.Add(it.Total)
		groups[idx].tax = groups[idx].tax.Add(lineVAT(it))
	}
	return groups
}
