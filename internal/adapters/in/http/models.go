package http

import (
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/identity"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/partner"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Request and response bodies of api/openapi.yaml.

type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type NewAccount struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

type NewPartner struct {
	NewAccount
	Vehicle string `json:"vehicle,omitempty"`
}

type Profile struct {
	Role        string             `json:"role"`
	Id          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Mobile      string             `json:"mobile"`
	Address     string             `json:"address"`
	Vehicle     string             `json:"vehicle,omitempty"`
	IsAvailable *bool              `json:"is_available,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

type TimeWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type NewCategory struct {
	Name string `json:"name"`
	TimeWindow
}

type Category struct {
	Id           openapi_types.UUID `json:"id"`
	RestaurantId openapi_types.UUID `json:"restaurant_id"`
	Name         string             `json:"name"`
	StartTime    string             `json:"start_time"`
	EndTime      string             `json:"end_time"`
}

type NewMenuItem struct {
	CategoryId openapi_types.UUID `json:"category_id"`
	Name       string             `json:"name"`
	Price      decimal.Decimal    `json:"price"`
}

type MenuItemPatch struct {
	Price       *decimal.Decimal `json:"price,omitempty"`
	IsAvailable *bool            `json:"is_available,omitempty"`
}

type MenuItem struct {
	Id           openapi_types.UUID `json:"id"`
	RestaurantId openapi_types.UUID `json:"restaurant_id"`
	CategoryId   openapi_types.UUID `json:"category_id"`
	Name         string             `json:"name"`
	Price        string             `json:"price"`
	IsAvailable  bool               `json:"is_available"`
}

type MenuEntry struct {
	Id          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Price       string             `json:"price"`
	IsAvailable bool               `json:"is_available"`
	Orderable   bool               `json:"orderable"`
}

type MenuCategory struct {
	Id        openapi_types.UUID `json:"id"`
	Name      string             `json:"name"`
	StartTime string             `json:"start_time"`
	EndTime   string             `json:"end_time"`
	Items     []MenuEntry        `json:"items"`
}

type Menu struct {
	RestaurantId openapi_types.UUID `json:"restaurant_id"`
	Categories   []MenuCategory     `json:"categories"`
}

type NewOrderItem struct {
	MenuItemId openapi_types.UUID `json:"menu_item_id"`
	Quantity   int                `json:"quantity"`
}

type NewPaymentProof struct {
	Filename string `json:"filename"`
	// Content is base64 in JSON.
	Content []byte `json:"content"`
}

type NewOrder struct {
	UserId       openapi_types.UUID `json:"user_id"`
	RestaurantId openapi_types.UUID `json:"restaurant_id"`
	Items        []NewOrderItem     `json:"items"`
	PaymentProof *NewPaymentProof   `json:"payment_proof,omitempty"`
}

type StatusChange struct {
	Status string `json:"status"`
}

type Assignment struct {
	PartnerId openapi_types.UUID `json:"partner_id"`
}

type OrderSummary struct {
	Id               openapi_types.UUID  `json:"id"`
	UserId           openapi_types.UUID  `json:"user_id"`
	RestaurantId     openapi_types.UUID  `json:"restaurant_id"`
	PartnerId        *openapi_types.UUID `json:"partner_id,omitempty"`
	Status           string              `json:"status"`
	TotalAmount      string              `json:"total_amount"`
	PaymentProof     string              `json:"payment_proof,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	PreparingAt      *time.Time          `json:"preparing_at,omitempty"`
	OutForDeliveryAt *time.Time          `json:"out_for_delivery_at,omitempty"`
	DeliveredAt      *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt      *time.Time          `json:"cancelled_at,omitempty"`
}

type OrderLine struct {
	MenuItemId openapi_types.UUID `json:"menu_item_id"`
	ItemName   string             `json:"item_name,omitempty"`
	UnitPrice  string             `json:"unit_price"`
	Quantity   int                `json:"quantity"`
	ItemTotal  string             `json:"item_total"`
}

type OrderDetail struct {
	OrderSummary
	Lines []OrderLine `json:"lines"`
}

type Party struct {
	Id      openapi_types.UUID `json:"id"`
	Name    string             `json:"name"`
	Email   string             `json:"email"`
	Mobile  string             `json:"mobile"`
	Address string             `json:"address"`
}

type Bill struct {
	OrderId         openapi_types.UUID `json:"order_id"`
	Status          string             `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	TotalAmount     string             `json:"total_amount"`
	User            Party              `json:"user"`
	Restaurant      Party              `json:"restaurant"`
	DeliveryPartner *Party             `json:"delivery_partner,omitempty"`
	Lines           []OrderLine        `json:"lines"`
	Subtotal        string             `json:"subtotal"`
	GstAmount       string             `json:"gst_amount"`
	DeliveryFee     string             `json:"delivery_fee"`
	GrandTotal      string             `json:"grand_total"`
}

type AvailablePartner struct {
	Id        openapi_types.UUID `json:"id"`
	Name      string             `json:"name"`
	Mobile    string             `json:"mobile"`
	Vehicle   string             `json:"vehicle"`
	CreatedAt time.Time          `json:"created_at"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toUUID(id kernel.UUID) openapi_types.UUID {
	return id.Raw()
}

func fromUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromRaw(id)
}

func toUUIDPtr(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	raw := id.Raw()
	return &raw
}

func profileFromContact(role identity.Role, id kernel.UUID, c kernel.Contact, createdAt time.Time) Profile {
	return Profile{
		Role:      role.String(),
		Id:        toUUID(id),
		Name:      c.Name(),
		Email:     c.Email(),
		Mobile:    c.Mobile(),
		Address:   c.Address(),
		CreatedAt: createdAt,
	}
}

func profileFromPartner(p *partner.Partner) Profile {
	profile := profileFromContact(identity.RoleDeliveryPartner, p.ID(), p.Contact(), p.CreatedAt())
	available := p.IsAvailable()
	profile.Vehicle = p.Vehicle()
	profile.IsAvailable = &available
	return profile
}

func profileFromQuery(p queries.Profile) Profile {
	return Profile{
		Role:        p.Role.String(),
		Id:          toUUID(p.ID),
		Name:        p.Name,
		Email:       p.Email,
		Mobile:      p.Mobile,
		Address:     p.Address,
		Vehicle:     p.Vehicle,
		IsAvailable: p.IsAvailable,
		CreatedAt:   p.CreatedAt,
	}
}

func categoryFromDomain(c *catalog.Category) Category {
	return Category{
		Id:           toUUID(c.ID()),
		RestaurantId: toUUID(c.RestaurantID()),
		Name:         c.Name(),
		StartTime:    c.Window().Start().String(),
		EndTime:      c.Window().End().String(),
	}
}

func menuItemFromDomain(m *catalog.MenuItem) MenuItem {
	return MenuItem{
		Id:           toUUID(m.ID()),
		RestaurantId: toUUID(m.RestaurantID()),
		CategoryId:   toUUID(m.CategoryID()),
		Name:         m.Name(),
		Price:        money(m.Price()),
		IsAvailable:  m.IsAvailable(),
	}
}

func menuFromQuery(r queries.GetRestaurantMenuQueryResponse) Menu {
	menu := Menu{RestaurantId: toUUID(r.RestaurantID), Categories: make([]MenuCategory, 0, len(r.Categories))}
	for _, c := range r.Categories {
		category := MenuCategory{
			Id:        toUUID(c.ID),
			Name:      c.Name,
			StartTime: c.Window.Start().String(),
			EndTime:   c.Window.End().String(),
			Items:     make([]MenuEntry, 0, len(c.Items)),
		}
		for _, item := range c.Items {
			category.Items = append(category.Items, MenuEntry{
				Id:          toUUID(item.ID),
				Name:        item.Name,
				Price:       money(item.Price),
				IsAvailable: item.IsAvailable,
				Orderable:   item.Orderable,
			})
		}
		menu.Categories = append(menu.Categories, category)
	}
	return menu
}

func summaryFields(
	id, userID, restaurantID kernel.UUID,
	partnerID *kernel.UUID,
	status order.Status,
	total decimal.Decimal,
	proof string,
	createdAt time.Time,
	ts order.Timestamps,
) OrderSummary {
	return OrderSummary{
		Id:               toUUID(id),
		UserId:           toUUID(userID),
		RestaurantId:     toUUID(restaurantID),
		PartnerId:        toUUIDPtr(partnerID),
		Status:           status.String(),
		TotalAmount:      money(total),
		PaymentProof:     proof,
		CreatedAt:        createdAt,
		PreparingAt:      ts.PreparingAt,
		OutForDeliveryAt: ts.OutForDeliveryAt,
		DeliveredAt:      ts.DeliveredAt,
		CancelledAt:      ts.CancelledAt,
	}
}

func orderFromDomain(o *order.Order) OrderDetail {
	detail := OrderDetail{
		OrderSummary: summaryFields(
			o.ID(), o.UserID(), o.RestaurantID(), o.Partner(), o.Status(),
			o.TotalAmount(), o.PaymentProof(), o.CreatedAt(), o.Timestamps(),
		),
		Lines: make([]OrderLine, 0, len(o.Lines())),
	}
	for _, l := range o.Lines() {
		detail.Lines = append(detail.Lines, OrderLine{
			MenuItemId: toUUID(l.MenuItemID()),
			UnitPrice:  money(l.UnitPrice()),
			Quantity:   l.Quantity(),
			ItemTotal:  money(l.ItemTotal()),
		})
	}
	return detail
}

func summaryFromQuery(s queries.OrderSummary) OrderSummary {
	return summaryFields(
		s.ID, s.UserID, s.RestaurantID, s.PartnerID, s.Status,
		s.TotalAmount, s.PaymentProof, s.CreatedAt, s.Timestamps,
	)
}

func linesFromQuery(lines []queries.OrderLineView) []OrderLine {
	out := make([]OrderLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, OrderLine{
			MenuItemId: toUUID(l.MenuItemID),
			ItemName:   l.ItemName,
			UnitPrice:  money(l.UnitPrice),
			Quantity:   l.Quantity,
			ItemTotal:  money(l.ItemTotal()),
		})
	}
	return out
}

func partyFromQuery(p queries.PartySummary) Party {
	return Party{Id: toUUID(p.ID), Name: p.Name, Email: p.Email, Mobile: p.Mobile, Address: p.Address}
}

func billFromQuery(b queries.Bill) Bill {
	bill := Bill{
		OrderId:     toUUID(b.OrderID),
		Status:      b.Status.String(),
		CreatedAt:   b.CreatedAt,
		TotalAmount: money(b.TotalAmount),
		User:        partyFromQuery(b.User),
		Restaurant:  partyFromQuery(b.Restaurant),
		Lines:       linesFromQuery(b.Lines),
		Subtotal:    money(b.Summary.Subtotal),
		GstAmount:   money(b.Summary.GSTAmount),
		DeliveryFee: money(b.Summary.DeliveryFee),
		GrandTotal:  money(b.Summary.GrandTotal),
	}
	if b.Partner != nil {
		p := partyFromQuery(*b.Partner)
		bill.DeliveryPartner = &p
	}
	return bill
}
