// Package docstore provides the destination document store the worker
// relays document bytes into.
//
// Registration reserves a slot for a document identified by its content hash
// and yields two urls: where to upload the bytes and where the document will
// be served from. The served url is written onto the auction document
// immediately; the bytes follow asynchronously through the transfer bridge.
//
// # Backends
//
//   - http: a document-service REST API (register + put)
//   - s3: an S3/MinIO bucket; registration synthesizes the object key
//
// Both are interchangeable behind the Store interface and mockable for unit
// testing (see docstore/mocks).
package docstore
