// Package fixtures contiene los datos estáticos del modo demo. Cada función devuelve una copia
// nueva: quien llama puede filtrar, ordenar o sellar el tenant sin afectar a otras sesiones.
package fixtures

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gasable-portal/internal/domain/entity"
)

// ReferenceTime ancla temporal de los datos demo (y "ahora" del dashboard en modo demo).
var ReferenceTime = time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC)

// DemoCompanyID tenant con el que se generan las filas; se reemplaza al servirlas.
const DemoCompanyID = "11111111-1111-4111-8111-111111111111"

// DemoCompanyName nombre por defecto de la empresa demo.
const DemoCompanyName = "Gasable Demo Supplier"

func str(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func f64(v float64) *float64 { return &v }

// ago devuelve ReferenceTime menos días y horas.
func ago(days, hours int) time.Time {
	return ReferenceTime.Add(-time.Duration(days)*24*time.Hour - time.Duration(hours)*time.Hour)
}

func agoPtr(days, hours int) *time.Time {
	t := ago(days, hours)
	return &t
}

func tenancy(id string, created time.Time) entity.Tenancy {
	return entity.Tenancy{ID: id, CompanyID: DemoCompanyID, CreatedAt: created, UpdatedAt: created}
}

// IDs estables referenciados entre tablas.
const (
	StoreRiyadhLPG   = "a1000000-0000-4000-8000-000000000001"
	StoreJeddahFuel  = "a1000000-0000-4000-8000-000000000002"
	StoreDammamWater = "a1000000-0000-4000-8000-000000000003"

	BranchOlaya    = "b1000000-0000-4000-8000-000000000001"
	BranchMalaz    = "b1000000-0000-4000-8000-000000000002"
	BranchCorniche = "b1000000-0000-4000-8000-000000000003"
	BranchKhobar   = "b1000000-0000-4000-8000-000000000004"

	TicketDelivery = "d1000000-0000-4000-8000-000000000001"
	TicketBilling  = "d1000000-0000-4000-8000-000000000002"
	TicketAccount  = "d1000000-0000-4000-8000-000000000003"
)

// Company perfil de la empresa demo.
func Company() *entity.Company {
	return &entity.Company{
		ID:                 DemoCompanyID,
		Name:               DemoCompanyName,
		LegalName:          str("Gasable Demo Trading Co."),
		CRNumber:           str("1010123456"),
		VATNumber:          str("300123456700003"),
		Email:              "supplier@demo.gasable",
		Phone:              str("+966500000001"),
		City:               str("Riyadh"),
		Address:            str("King Fahd Road, Olaya District"),
		LogoURL:            nil,
		Status:             entity.CompanyStatusActive,
		SubscriptionTier:   str("Starter"),
		SubscriptionStatus: str(entity.SubscriptionStatusActive),
		CreatedAt:          ago(180, 0),
		UpdatedAt:          ago(3, 0),
	}
}

// Stores tiendas demo.
func Stores() []*entity.Store {
	return []*entity.Store{
		{
			Tenancy:     tenancy(StoreRiyadhLPG, ago(170, 0)),
			Name:        "Riyadh LPG Express",
			Description: str("LPG cylinder delivery and refills across Riyadh"),
			Category:    "lpg",
			Status:      entity.StoreStatusActive,
			City:        "Riyadh",
			Address:     str("Olaya Street 12"),
			Phone:       str("+966500000010"),
			Rating:      decPtr("4.7"),
		},
		{
			Tenancy:     tenancy(StoreJeddahFuel, ago(120, 0)),
			Name:        "Jeddah Fuel Delivery",
			Description: str("Diesel and gasoline delivered to sites"),
			Category:    "fuel",
			Status:      entity.StoreStatusActive,
			City:        "Jeddah",
			Address:     str("Corniche Road 88"),
			Phone:       str("+966500000020"),
			Rating:      decPtr("4.3"),
		},
		{
			Tenancy:  tenancy(StoreDammamWater, ago(20, 0)),
			Name:     "Dammam Water Supply",
			Category: "water",
			Status:   entity.StoreStatusPending,
			City:     "Dammam",
		},
	}
}

// Branches sucursales demo.
func Branches() []*entity.Branch {
	return []*entity.Branch{
		{
			Tenancy: tenancy(BranchOlaya, ago(165, 0)), StoreID: StoreRiyadhLPG,
			Name: "Olaya", City: "Riyadh", Address: str("Olaya Street 12"),
			Latitude: f64(24.6948), Longitude: f64(46.6855), Phone: str("+966500000011"),
			ManagerName: str("Faisal Al-Harbi"), Status: entity.BranchStatusActive,
		},
		{
			Tenancy: tenancy(BranchMalaz, ago(90, 0)), StoreID: StoreRiyadhLPG,
			Name: "Al Malaz", City: "Riyadh", Address: str("Salah Al-Din Street 4"),
			Latitude: f64(24.6669), Longitude: f64(46.7380),
			ManagerName: str("Nora Al-Qahtani"), Status: entity.BranchStatusActive,
		},
		{
			Tenancy: tenancy(BranchCorniche, ago(118, 0)), StoreID: StoreJeddahFuel,
			Name: "Corniche Depot", City: "Jeddah", Address: str("Corniche Road 88"),
			Latitude: f64(21.5433), Longitude: f64(39.1728), Status: entity.BranchStatusActive,
		},
		{
			Tenancy: tenancy(BranchKhobar, ago(15, 0)), StoreID: StoreDammamWater,
			Name: "Al Khobar", City: "Khobar", Status: entity.BranchStatusInactive,
		},
	}
}

// Products productos demo.
func Products() []*entity.Product {
	p := func(n int, store, sku, name, category, price, unit string, stock int, status string, days int) *entity.Product {
		id := "c1000000-0000-4000-8000-00000000000" + string(rune('0'+n))
		return &entity.Product{
			Tenancy: tenancy(id, ago(days, 0)), StoreID: store, SKU: sku, Name: name,
			Category: category, Price: dec(price), Unit: unit, StockQuantity: stock, Status: status,
		}
	}
	products := []*entity.Product{
		p(1, StoreRiyadhLPG, "LPG-11KG", "LPG Cylinder 11kg", "lpg", "25", "cylinder", 140, entity.ProductStatusActive, 160),
		p(2, StoreRiyadhLPG, "LPG-25KG", "LPG Cylinder 25kg", "lpg", "55", "cylinder", 60, entity.ProductStatusActive, 160),
		p(3, StoreRiyadhLPG, "LPG-REG", "Gas Regulator", "accessories", "45.5", "unit", 0, entity.ProductStatusOutOfStock, 150),
		p(4, StoreJeddahFuel, "DSL-1L", "Diesel", "fuel", "1.66", "liter", 20000, entity.ProductStatusActive, 115),
		p(5, StoreJeddahFuel, "G91-1L", "Gasoline 91", "fuel", "2.18", "liter", 15000, entity.ProductStatusActive, 115),
		p(6, StoreRiyadhLPG, "SRV-INST", "Cylinder Installation", "services", "30", "unit", 0, entity.ProductStatusDraft, 40),
		p(7, StoreDammamWater, "WTR-19L", "Drinking Water 19L", "water", "12", "unit", 300, entity.ProductStatusActive, 18),
		p(8, StoreRiyadhLPG, "LPG-HOSE", "Gas Hose 1.5m", "accessories", "18.75", "unit", 35, entity.ProductStatusArchived, 200),
	}
	products[0].Description = str("Standard household cylinder, refill exchange")
	products[3].Description = str("Bulk diesel, minimum order 500 liters")
	return products
}

func orderItem(productID, name string, qty int, unit string) entity.OrderItem {
	price := dec(unit)
	return entity.OrderItem{
		ProductID: productID, ProductName: name, Quantity: qty,
		UnitPrice: price, Total: price.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func order(id, number, store string, branch *string, customer, status, payment, method string,
	fee string, created time.Time, items ...entity.OrderItem) *entity.Order {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Total)
	}
	delivery := dec(fee)
	vat := subtotal.Add(delivery).Mul(dec("0.15")).Round(2)
	return &entity.Order{
		Tenancy: tenancy(id, created), StoreID: store, BranchID: branch,
		OrderNumber: number, CustomerName: customer, Status: status,
		PaymentStatus: payment, PaymentMethod: method, Items: items,
		Subtotal: subtotal, DeliveryFee: delivery, VATAmount: vat,
		TotalAmount: subtotal.Add(delivery).Add(vat),
	}
}

// Orders pedidos demo (dos períodos de 30 días para las métricas del dashboard).
func Orders() []*entity.Order {
	olaya, malaz, corniche := str(BranchOlaya), str(BranchMalaz), str(BranchCorniche)
	orders := []*entity.Order{
		order("e1000000-0000-4000-8000-000000000001", "GS-10231", StoreRiyadhLPG, olaya, "Ahmed Al-Otaibi",
			entity.OrderStatusDelivered, entity.PaymentStatusPaid, "card", "10", ago(2, 3),
			orderItem("c1000000-0000-4000-8000-000000000001", "LPG Cylinder 11kg", 4, "25")),
		order("e1000000-0000-4000-8000-000000000002", "GS-10232", StoreRiyadhLPG, malaz, "Sara Al-Dossary",
			entity.OrderStatusPending, entity.PaymentStatusPending, "cash", "10", ago(0, 5),
			orderItem("c1000000-0000-4000-8000-000000000002", "LPG Cylinder 25kg", 2, "55"),
			orderItem("c1000000-0000-4000-8000-000000000003", "Gas Regulator", 1, "45.5")),
		order("e1000000-0000-4000-8000-000000000003", "GS-10233", StoreJeddahFuel, corniche, "Red Sea Construction",
			entity.OrderStatusOutForDelivery, entity.PaymentStatusPaid, "wallet", "150", ago(1, 2),
			orderItem("c1000000-0000-4000-8000-000000000004", "Diesel", 1000, "1.66")),
		order("e1000000-0000-4000-8000-000000000004", "GS-10234", StoreRiyadhLPG, olaya, "Khalid Al-Shehri",
			entity.OrderStatusCancelled, entity.PaymentStatusRefunded, "apple_pay", "10", ago(9, 0),
			orderItem("c1000000-0000-4000-8000-000000000001", "LPG Cylinder 11kg", 1, "25")),
		order("e1000000-0000-4000-8000-000000000005", "GS-10198", StoreJeddahFuel, corniche, "Hejaz Logistics",
			entity.OrderStatusDelivered, entity.PaymentStatusPaid, "card", "150", ago(41, 0),
			orderItem("c1000000-0000-4000-8000-000000000005", "Gasoline 91", 600, "2.18")),
		order("e1000000-0000-4000-8000-000000000006", "GS-10177", StoreRiyadhLPG, malaz, "Mona Al-Zahrani",
			entity.OrderStatusDelivered, entity.PaymentStatusPaid, "cash", "10", ago(52, 0),
			orderItem("c1000000-0000-4000-8000-000000000001", "LPG Cylinder 11kg", 2, "25")),
	}
	orders[0].DeliveredAt = agoPtr(2, 1)
	orders[0].DeliveryAddress = str("Al Wurud, Riyadh")
	orders[2].ScheduledAt = agoPtr(0, -6)
	orders[2].Notes = str("Gate 3, ask for site manager")
	orders[4].DeliveredAt = agoPtr(40, 20)
	orders[5].DeliveredAt = agoPtr(51, 22)
	return orders
}

func invoiceFromOrder(id, number, status string, o *entity.Order, issued time.Time) *entity.Invoice {
	items := make([]entity.InvoiceItem, 0, len(o.Items)+1)
	for _, it := range o.Items {
		items = append(items, entity.InvoiceItem{
			Description: it.ProductName, Quantity: decimal.NewFromInt(int64(it.Quantity)),
			UnitPrice: it.UnitPrice, VATRate: dec("15"), Total: it.Total,
		})
	}
	if o.DeliveryFee.IsPositive() {
		items = append(items, entity.InvoiceItem{
			Description: "Delivery", Quantity: decimal.NewFromInt(1),
			UnitPrice: o.DeliveryFee, VATRate: dec("15"), Total: o.DeliveryFee,
		})
	}
	due := issued.Add(30 * 24 * time.Hour)
	return &entity.Invoice{
		Tenancy: tenancy(id, issued), OrderID: str(o.ID), InvoiceNumber: number, Status: status,
		CustomerName: o.CustomerName, Items: items,
		Subtotal: o.Subtotal.Add(o.DeliveryFee), VATAmount: o.VATAmount, TotalAmount: o.TotalAmount,
		Currency: "SAR", IssuedAt: issued, DueDate: &due,
	}
}

// Invoices facturas demo derivadas de los pedidos.
func Invoices() []*entity.Invoice {
	orders := Orders()
	invoices := []*entity.Invoice{
		invoiceFromOrder("f1000000-0000-4000-8000-000000000001", "INV-2025-0041", entity.InvoiceStatusPaid, orders[0], ago(2, 0)),
		invoiceFromOrder("f1000000-0000-4000-8000-000000000002", "INV-2025-0042", entity.InvoiceStatusIssued, orders[2], ago(1, 0)),
		invoiceFromOrder("f1000000-0000-4000-8000-000000000003", "INV-2025-0031", entity.InvoiceStatusPaid, orders[4], ago(40, 0)),
		invoiceFromOrder("f1000000-0000-4000-8000-000000000004", "INV-2025-0027", entity.InvoiceStatusOverdue, orders[5], ago(51, 0)),
	}
	invoices[0].PaidAt = agoPtr(2, 0)
	invoices[1].CustomerVATNumber = str("310987654300003")
	invoices[2].PaidAt = agoPtr(35, 0)
	return invoices
}

// Tickets tickets de soporte demo.
func Tickets() []*entity.Ticket {
	return []*entity.Ticket{
		{
			Tenancy: tenancy(TicketDelivery, ago(3, 0)), Subject: "Driver app not showing new orders",
			Description: "Orders placed after 6pm are not visible in the driver app.",
			Status:      entity.TicketStatusInProgress, Priority: entity.TicketPriorityHigh,
			Category: "technical", AssignedTo: str("support-team"),
		},
		{
			Tenancy: tenancy(TicketBilling, ago(12, 0)), Subject: "Duplicate subscription charge",
			Description: "We were charged twice for the February subscription.",
			Status:      entity.TicketStatusResolved, Priority: entity.TicketPriorityMedium,
			Category: "billing", ResolvedAt: agoPtr(10, 0),
		},
		{
			Tenancy: tenancy(TicketAccount, ago(0, 8)), Subject: "Add second company admin",
			Description: "Please enable a second admin account for our operations manager.",
			Status:      entity.TicketStatusOpen, Priority: entity.TicketPriorityLow,
			Category: "account",
		},
	}
}

// TicketMessages mensajes de todos los tickets demo.
func TicketMessages() []*entity.TicketMessage {
	m := func(n int, ticket, sender, name, role, text string, created time.Time) *entity.TicketMessage {
		id := "d2000000-0000-4000-8000-00000000000" + string(rune('0'+n))
		return &entity.TicketMessage{
			Tenancy: tenancy(id, created), TicketID: ticket, SenderID: sender,
			SenderName: name, SenderRole: role, Message: text,
		}
	}
	return []*entity.TicketMessage{
		m(1, TicketDelivery, "demo-user", "Demo Supplier", "supplier", "Orders after 6pm are missing in the app.", ago(3, 0)),
		m(2, TicketDelivery, "support-1", "Gasable Support", "support", "Thanks, we are checking the dispatch queue.", ago(2, 20)),
		m(3, TicketDelivery, "support-1", "Gasable Support", "support", "A fix is being rolled out today.", ago(1, 4)),
		m(4, TicketBilling, "demo-user", "Demo Supplier", "supplier", "We see two charges on our card.", ago(12, 0)),
		m(5, TicketBilling, "support-2", "Gasable Billing", "support", "Refund issued for the duplicate charge.", ago(10, 0)),
	}
}

// Campaigns campañas demo.
func Campaigns() []*entity.Campaign {
	return []*entity.Campaign{
		{
			Tenancy: tenancy("c2000000-0000-4000-8000-000000000001", ago(20, 0)), Name: "Ramadan Refill Offer",
			Type: "discount", Status: entity.CampaignStatusActive, DiscountPercent: decPtr("15"),
			Budget: dec("5000"), TargetAudience: str("Riyadh households"), StartsAt: ago(14, 0),
			EndsAt: agoPtr(-16, 0), Impressions: 18400, Clicks: 1320, Conversions: 214,
		},
		{
			Tenancy: tenancy("c2000000-0000-4000-8000-000000000002", ago(60, 0)), Name: "Fleet Diesel Loyalty",
			Type: "loyalty", Status: entity.CampaignStatusCompleted, Budget: dec("12000"),
			TargetAudience: str("Construction companies"), StartsAt: ago(58, 0), EndsAt: agoPtr(28, 0),
			Impressions: 5200, Clicks: 610, Conversions: 48,
		},
		{
			Tenancy: tenancy("c2000000-0000-4000-8000-000000000003", ago(1, 0)), Name: "Water Launch Dammam",
			Type: "announcement", Status: entity.CampaignStatusDraft, Budget: dec("2500"),
			StartsAt: ago(-7, 0),
		},
	}
}

// Certifications certificaciones demo.
func Certifications() []*entity.Certification {
	return []*entity.Certification{
		{
			Tenancy: tenancy("c3000000-0000-4000-8000-000000000001", ago(150, 0)), Name: "Civil Defense Safety Permit",
			Type: "safety", Status: entity.CertificationStatusValid, Issuer: "General Directorate of Civil Defense",
			CertificateNumber: str("CD-RYD-88213"), IssuedAt: ago(150, 0), ExpiresAt: agoPtr(-215, 0),
		},
		{
			Tenancy: tenancy("c3000000-0000-4000-8000-000000000002", ago(400, 0)), Name: "SASO Cylinder Conformity",
			Type: "quality", Status: entity.CertificationStatusExpired, Issuer: "SASO",
			CertificateNumber: str("SASO-2023-4410"), IssuedAt: ago(400, 0), ExpiresAt: agoPtr(35, 0),
		},
		{
			Tenancy: tenancy("c3000000-0000-4000-8000-000000000003", ago(5, 0)), Name: "Fuel Distribution License",
			Type: "license", Status: entity.CertificationStatusPending, Issuer: "Ministry of Energy",
			IssuedAt: ago(5, 0),
		},
	}
}

// Employees miembros demo.
func Employees() []*entity.Employee {
	return []*entity.Employee{
		{
			Tenancy: tenancy("c4000000-0000-4000-8000-000000000001", ago(180, 0)), UserID: str("demo-user"),
			FullName: "Demo Supplier", Email: "supplier@demo.gasable", Role: entity.EmployeeRoleOwner,
			Status: entity.EmployeeStatusActive, JoinedAt: agoPtr(180, 0),
		},
		{
			Tenancy: tenancy("c4000000-0000-4000-8000-000000000002", ago(160, 0)), UserID: str("demo-manager"),
			FullName: "Faisal Al-Harbi", Email: "faisal@demo.gasable", Phone: str("+966500000011"),
			Role: entity.EmployeeRoleManager, Status: entity.EmployeeStatusActive,
			BranchID: str(BranchOlaya), JoinedAt: agoPtr(160, 0),
		},
		{
			Tenancy: tenancy("c4000000-0000-4000-8000-000000000003", ago(100, 0)), UserID: str("demo-driver"),
			FullName: "Omar Hassan", Email: "omar@demo.gasable", Role: entity.EmployeeRoleDriver,
			Status: entity.EmployeeStatusActive, BranchID: str(BranchCorniche), JoinedAt: agoPtr(99, 0),
		},
		{
			Tenancy: tenancy("c4000000-0000-4000-8000-000000000004", ago(2, 0)),
			FullName: "Layla Al-Mutairi", Email: "layla@demo.gasable", Role: entity.EmployeeRoleStaff,
			Status: entity.EmployeeStatusInvited,
		},
	}
}

// PerformanceMetrics indicadores demo.
func PerformanceMetrics(days int) *entity.PerformanceMetrics {
	return &entity.PerformanceMetrics{
		CompanyID: DemoCompanyID, PeriodDays: days,
		FulfillmentRate: 96.4, OnTimeDeliveryRate: 91.2, CancellationRate: 2.8,
		AverageRating: 4.6, TotalReviews: 312, ResponseTimeHours: 1.5,
	}
}
