// Package filestore persists daily documents as JSON files in a
// dataset/year/month/day directory tree.
//
// One day of one dataset becomes a single file, for example:
//
//	output/transactional_data/shipments/2024/03/17/shipments_2024-03-17.json
//	output/transactional_data/purchase_orders/2024/03/17/po_2024-03-17.json
//	output/transactional_data/inventory/2024/03/17/inventory_2024-03-17.json
//
// Writes go to a temporary file in the target directory first and are
// published with an atomic rename, so readers never observe a partially
// written document and re-running a day simply replaces it.
//
//	store, err := filestore.NewStore("output/transactional_data",
//		filestore.WithLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = store.WriteDailyBatch(ctx, batch)
//
// The Store implements simdata.PartitionStore, simdata.DocumentReader,
// and simdata.PartitionCatalog.
package filestore
