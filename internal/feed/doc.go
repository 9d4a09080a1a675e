// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package feed drives the PAD outputs from the content store.
//
// A Ticker re-resolves the store on a fixed period and re-renders the DLS
// file and slideshow whenever the authoritative content changes, which is
// how expirations reach the encoder. Commands mutate the store and publish
// the result within the same critical section, so the outputs always match
// the last acknowledged request.
package feed
