package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pdmitriev/recipebook-backend/database"
	"github.com/pdmitriev/recipebook-backend/errs"
)

// ShoppingList computes the consolidated ingredient list across every recipe
// in a user's cart. Pure read-side aggregation, recomputed per call.
type ShoppingList struct {
	cart *database.ShoppingCartRepo
}

func NewShoppingList(cart *database.ShoppingCartRepo) *ShoppingList {
	return &ShoppingList{cart: cart}
}

// Compute returns (name, unit, total) groups sorted alphabetically by name
func (s *ShoppingList) Compute(userID uuid.UUID) ([]database.IngredientTotal, error) {
	totals, err := s.cart.IngredientTotals(userID)
	if err != nil {
		return nil, errs.FromDatabase("aggregate", "shopping cart", err)
	}
	return totals, nil
}

// RenderText renders the aggregate as a plain-text list, one group per line,
// e.g. "Tomato — 200 g".
func RenderText(totals []database.IngredientTotal) string {
	var b strings.Builder
	for _, t := range totals {
		fmt.Fprintf(&b, "%s — %d %s\n", t.Name, t.Total, t.MeasurementUnit)
	}
	return b.String()
}
