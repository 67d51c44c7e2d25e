package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ims/backend/internal/domain/shared"
)

// Allowed sort columns per table. OrderBy comes straight from the query
// string, so anything outside the whitelist falls back to created_at.
var (
	itemSortFields = map[string]bool{
		"id":            true,
		"name":          true,
		"stock":         true,
		"buying_price":  true,
		"selling_price": true,
		"created_at":    true,
		"updated_at":    true,
	}

	discountSortFields = map[string]bool{
		"id":         true,
		"name":       true,
		"type":       true,
		"value":      true,
		"active":     true,
		"created_at": true,
		"updated_at": true,
	}

	customerSortFields = map[string]bool{
		"id":         true,
		"name":       true,
		"due":        true,
		"created_at": true,
		"updated_at": true,
	}

	vendorSortFields = map[string]bool{
		"id":             true,
		"name":           true,
		"due_amount":     true,
		"total_purchase": true,
		"created_at":     true,
		"updated_at":     true,
	}

	salesOrderSortFields = map[string]bool{
		"id":         true,
		"total":      true,
		"paid":       true,
		"date":       true,
		"created_at": true,
		"updated_at": true,
	}

	purchaseOrderSortFields = map[string]bool{
		"id":               true,
		"total_buy_amount": true,
		"pay_amount":       true,
		"date":             true,
		"created_at":       true,
		"updated_at":       true,
	}
)

// validateSortField maps an OrderBy value onto the whitelist, defaulting to
// created_at
func validateSortField(field string, allowed map[string]bool) string {
	trimmed := strings.TrimSpace(field)
	if allowed[trimmed] {
		return trimmed
	}
	return "created_at"
}

// validateSortOrder normalizes the sort direction, defaulting to desc
func validateSortOrder(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "asc"
	}
	return "desc"
}

// applyFilter applies ordering, pagination and an optional name search to a
// query. A zero PageSize disables pagination so internal full scans (price
// recompute, due resums) see every row.
func applyFilter(db *gorm.DB, filter shared.Filter, searchColumn string, sortFields map[string]bool) *gorm.DB {
	if filter.Search != "" && searchColumn != "" {
		db = db.Where(fmt.Sprintf("%s ILIKE ?", searchColumn), "%"+filter.Search+"%")
	}

	db = db.Order(fmt.Sprintf("%s %s", validateSortField(filter.OrderBy, sortFields), validateSortOrder(filter.OrderDir)))

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		db = db.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}
	return db
}
