package pricing

import (
	"log"
	"time"

	"github.com/shopspring/decimal"

	"luxemarket/models"
)

// DefaultDealTTL is how long a daily deal stays active after it is added
const DefaultDealTTL = 24 * time.Hour

var hundred = decimal.NewFromInt(100)

// Engine applies daily-deal overlays and prices carts.
// All arithmetic is done in decimal and rounded to cents at the edges.
type Engine struct {
	dealTTL time.Duration
	now     func() time.Time
}

// NewEngine creates a pricing engine. A non-positive ttl uses DefaultDealTTL.
func NewEngine(dealTTL time.Duration) *Engine {
	if dealTTL <= 0 {
		dealTTL = DefaultDealTTL
	}
	return &Engine{dealTTL: dealTTL, now: time.Now}
}

// WithClock replaces the engine clock. Used by tests and the deal repository.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Now returns the engine clock time
func (e *Engine) Now() time.Time {
	return e.now()
}

// DealTTL returns how long a deal stays active
func (e *Engine) DealTTL() time.Duration {
	return e.dealTTL
}

// IsActive reports whether deal is still inside its TTL window.
// Deals with an unparseable addedDate are treated as expired.
func (e *Engine) IsActive(deal models.DailyDeal) bool {
	added, err := time.Parse(time.RFC3339, deal.AddedDate)
	if err != nil {
		log.Printf("⚠️  Deal for product %d has invalid addedDate %q", deal.ProductID, deal.AddedDate)
		return false
	}
	now := e.now()
	return !now.Before(added) && now.Before(added.Add(e.dealTTL))
}

// DealPrice returns price reduced by percent, rounded to cents
func DealPrice(price, percent float64) float64 {
	p := decimal.NewFromFloat(price)
	discount := p.Mul(decimal.NewFromFloat(percent)).Div(hundred)
	out, _ := p.Sub(discount).Round(2).Float64()
	return out
}

// ApplyDeals returns copies of products carrying the isDailyDeal/dealPrice overlay.
// The input slice is never modified.
func (e *Engine) ApplyDeals(products []models.Product, deals map[int]models.DailyDeal) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = e.ApplyDeal(p, deals)
	}
	return out
}

// ApplyDeal overlays a single product
func (e *Engine) ApplyDeal(p models.Product, deals map[int]models.DailyDeal) models.Product {
	p.IsDailyDeal = false
	p.DealPrice = nil
	if deal, ok := deals[p.ID]; ok {
		price := DealPrice(p.Price, deal.DiscountPercent)
		p.IsDailyDeal = true
		p.DealPrice = &price
	}
	return p
}

// PriceCart computes line and cart totals. Unit prices come from the current product
// record when it still exists, otherwise from the price captured when the item was added.
func (e *Engine) PriceCart(items []models.CartItem, products map[int]models.Product, deals map[int]models.DailyDeal) models.CartSummary {
	summary := models.CartSummary{Lines: make([]models.CartLine, 0, len(items))}

	subtotal := decimal.Zero
	total := decimal.Zero

	for _, item := range items {
		base := decimal.NewFromFloat(item.Price)
		if p, ok := products[item.ProductID]; ok {
			base = decimal.NewFromFloat(p.Price)
			item.Price = p.Price
		}

		unit := base
		deal, onDeal := deals[item.ProductID]
		if onDeal {
			unit = base.Sub(base.Mul(decimal.NewFromFloat(deal.DiscountPercent)).Div(hundred)).Round(2)
		}

		qty := decimal.NewFromInt(int64(item.Quantity))
		lineBase := base.Mul(qty)
		lineTotal := unit.Mul(qty)

		subtotal = subtotal.Add(lineBase)
		total = total.Add(lineTotal)

		unitF, _ := unit.Float64()
		lineF, _ := lineTotal.Round(2).Float64()
		summary.Lines = append(summary.Lines, models.CartLine{
			CartItem:  item,
			UnitPrice: unitF,
			LineTotal: lineF,
			OnDeal:    onDeal,
		})
		summary.ItemCount += item.Quantity
	}

	summary.Subtotal, _ = subtotal.Round(2).Float64()
	summary.Total, _ = total.Round(2).Float64()
	summary.Discount, _ = subtotal.Sub(total).Round(2).Float64()
	return summary
}
