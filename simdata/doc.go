// Package simdata generates synthetic supply-chain transactional data with
// repeatable pseudo-random behavior.
//
// The package models one simulated calendar day at a time. For every day it
// produces three record sets: outbound shipments, inbound purchase orders,
// and a full inventory snapshot across every (warehouse, product) pair.
// Record identifiers, quantities, costs, and delivery outcomes are drawn
// from a seeded random source, so a run with the same configuration and
// seed reproduces byte-identical data.
//
// A Simulator drives the day loop and hands each day's DailyBatch to a
// PartitionStore implementation for persistence:
//
//	store, err := filestore.NewStore("output/transactional_data")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sim, err := simdata.BuildSimulator(
//		simdata.RunConfig{
//			StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
//			EndDate:       time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
//			NumProducts:   500,
//			NumWarehouses: 50,
//			NumSuppliers:  100,
//			Seed:          42,
//		},
//		store,
//		simdata.WithLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	totals, err := sim.Run(ctx)
//
// Inventory is stateful: the quantity on hand for each (warehouse, product)
// pair carries over from day to day, decreased by sales and occasionally
// increased by large receipts. Shipments and purchase orders are stateless
// apart from their monotonically increasing identifier sequences.
//
// Persisted documents are grouped into one partition per dataset and date,
// so downstream consumers can fetch exactly one day of one dataset. The
// retrieval package serves those documents over HTTP.
package simdata
