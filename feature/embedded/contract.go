package embedded

import (
	"fmt"

	"auction-courier/core/gateway"
)

// ContractType is stamped on every contract this family creates.
const ContractType = "ceasefire"

// contractRequiredFields must all be present on the auction's contract data;
// a missing one aborts contract creation.
var contractRequiredFields = []string{
	"awardID", "contractID", "items", "suppliers",
	"value", "dateSigned", "documents",
}

// contractOptionalFields are copied only when non-empty.
var contractOptionalFields = []string{
	"contractNumber", "title", "title_en", "title_ru",
	"description", "description_en", "description_ru",
}

// makeContract builds the contract payload from the terminal auction's own
// embedded contract data. Required fields are copied verbatim, optional
// descriptive fields only when non-empty.
func makeContract(auction gateway.Auction) (map[string]any, error) {
	if len(auction.Contracts) == 0 {
		return nil, fmt.Errorf("auction %s has no contract data", auction.ID)
	}
	source := auction.Contracts[0]

	data := map[string]any{
		"contractType": ContractType,
	}
	for _, field := range contractRequiredFields {
		value, ok := source[field]
		if !ok || value == nil {
			return nil, fmt.Errorf("auction %s contract data misses required field %s", auction.ID, field)
		}
		data[field] = value
	}
	for _, field := range contractOptionalFields {
		if value, ok := source[field]; ok && !empty(value) {
			data[field] = value
		}
	}
	if auction.ContractTerms != nil {
		data["contractTerms"] = auction.ContractTerms
	}
	if auction.LotID != "" {
		data["merchandisingObject"] = auction.LotID
	}
	return data, nil
}

func empty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	default:
		return false
	}
}
