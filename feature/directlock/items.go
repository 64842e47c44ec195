package directlock

import (
	"context"

	"auction-courier/core/gateway"
	"auction-courier/core/queue"

	"go.uber.org/zap"
)

// createItems converts each of the lot's assets into item and document
// records. Complex assets contribute their nested items as well, each with
// its own documents.
func (s *Strategy) createItems(ctx context.Context, assetIDs []string) ([]gateway.Item, []gateway.Document) {
	var items []gateway.Item
	var documents []gateway.Document

	for _, assetID := range assetIDs {
		asset, found, err := s.assets.Get(ctx, assetID)
		if err != nil || !found {
			s.logger.Error("Failed to get asset",
				zap.String("asset", assetID),
				zap.Bool("found", found),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("Received asset",
			zap.String("asset", asset.ID),
			zap.String("status", asset.Status),
		)

		item := gateway.Item{
			ID:                        asset.ID,
			Description:               asset.Title,
			Classification:            asset.Classification,
			AdditionalClassifications: asset.AdditionalClassifications,
			Address:                   asset.Address,
			Unit:                      asset.Unit,
			Quantity:                  asset.Quantity,
			Location:                  asset.Location,
		}
		items = append(items, item)
		documents = append(documents, s.registerDocuments(ctx, asset.ID, asset.Documents)...)

		for _, nested := range asset.Items {
			docs := nested.Documents
			nested.Documents = nil
			items = append(items, nested)
			documents = append(documents, s.registerDocuments(ctx, nested.ID, docs)...)
		}
	}

	return items, documents
}

// registerDocuments registers an upload slot for every document of one item
// and queues the byte transfer. A failed registration skips that document;
// the rest proceed.
func (s *Strategy) registerDocuments(ctx context.Context, itemID string, docs []gateway.Document) []gateway.Document {
	var out []gateway.Document
	for _, doc := range docs {
		registered, err := s.docs.RegisterUpload(ctx, doc.Hash)
		if err != nil {
			s.logger.Error("Failed to register document upload",
				zap.String("item", itemID),
				zap.String("hash", doc.Hash),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("Registered document upload",
			zap.String("item", itemID),
			zap.String("hash", doc.Hash),
		)

		s.transfer.Push(queue.TransferJob{
			GetURL:    doc.URL,
			UploadURL: registered.UploadURL,
		})

		out = append(out, gateway.Document{
			Hash:         doc.Hash,
			Description:  doc.Description,
			Title:        doc.Title,
			URL:          registered.URL,
			Format:       doc.Format,
			DocumentType: doc.DocumentType,
			DocumentOf:   "item",
			RelatedItem:  itemID,
		})
	}
	return out
}
