// Package retrieval serves persisted daily documents to API consumers.
//
// The Service sits between a transport layer and the storage backends: it
// validates dataset names and date strings, defaults the date to yesterday
// when none is given, applies inventory filters, and reports failures
// through the shared sentinel errors so transports can map them to status
// codes.
//
//	service, err := retrieval.BuildService(store, store,
//		retrieval.WithLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := service.GetDailyDocument(ctx, "inventory", "2024-03-17",
//		retrieval.BuildInventoryFilter().
//			WithWarehouseID("WH-001").
//			WithProductID("PRD-0042").
//			Finalize(),
//	)
//
// Inventory documents can be narrowed by warehouse and product. The
// filtered result re-counts its records, the stored document keeps its
// full count.
package retrieval
