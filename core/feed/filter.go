package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// FilterDocID is the design document holding the feed filter.
const FilterDocID = "_design/courier_filters"

// FilterName is the filter the consumer subscribes to.
const FilterName = "courier_feed"

// filterTemplate is the server-side predicate: auction documents whose type
// tag belongs to a handled family. The direct-lock family also needs the
// pending.verification rows that trigger its prepare phase; the embedded
// family only reports terminal outcomes.
const filterTemplate = `function(doc, req) {
    if (doc.doc_type !== 'Auction') { return false; }
    var direct = %s;
    var embedded = %s;
    if (direct.indexOf(doc.procurementMethodType) !== -1) { return true; }
    if (embedded.indexOf(doc.procurementMethodType) !== -1 && doc.status !== 'pending.verification') { return true; }
    return false;
}`

type filterDoc struct {
	ID      string            `json:"_id"`
	Rev     string            `json:"_rev,omitempty"`
	Filters map[string]string `json:"filters"`
}

// PushFilter publishes the feed filter built from the configured alias sets,
// creating or updating the design document as needed.
func PushFilter(ctx context.Context, client *Client, directAliases, embeddedAliases []string, logger *zap.Logger) error {
	direct, err := json.Marshal(nonNil(directAliases))
	if err != nil {
		return err
	}
	embedded, err := json.Marshal(nonNil(embeddedAliases))
	if err != nil {
		return err
	}
	source := fmt.Sprintf(filterTemplate, direct, embedded)

	doc := filterDoc{ID: FilterDocID, Filters: map[string]string{}}
	if _, err := client.GetDesignDoc(ctx, FilterDocID, &doc); err != nil {
		return fmt.Errorf("get filter doc: %w", err)
	}

	if doc.Filters[FilterName] == source {
		logger.Info("Filter doc exists", zap.String("doc", FilterDocID))
		return nil
	}

	doc.Filters[FilterName] = source
	if err := client.PutDesignDoc(ctx, FilterDocID, doc); err != nil {
		return fmt.Errorf("save filter doc: %w", err)
	}
	logger.Info("Filter doc saved", zap.String("doc", FilterDocID))
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
