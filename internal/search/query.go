// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package search

import (
	"fmt"

	"github.com/fluxgen/sourcing-engine/pkg/types"
)

// BuildQuery maps a queue item to a search query string tuned per item
// type: equipment queries target manufacturers, raw materials target
// bulk distributors (prd002-search R1.1-R1.3). Pure function.
func BuildQuery(item types.QueueItem) string {
	switch item.ItemType {
	case types.ItemEquipment:
		return fmt.Sprintf("%s suppliers manufacturers industrial", item.ItemName)
	case types.ItemMaterial:
		return fmt.Sprintf("%s bulk suppliers distributor industrial grade", item.ItemName)
	default:
		return fmt.Sprintf("%s suppliers", item.ItemName)
	}
}
