// Package antireplay detects resubmission of economic transactions.
//
// A common abuse pattern against the trade/mail/market handlers is to
// capture a legitimate transaction message and submit it again: the client
// pays once and the server credits twice. This package remembers transaction
// digests it has seen and flags duplicates.
//
// The implementation is a Stable Bloom Filter, a probabilistic structure
// which keeps a constant false positive rate on an unbounded stream while
// using fixed memory. A false positive rejects a legitimate transaction, so
// the error rate has to stay small; the default of 0.1% is conservative
// enough for economy traffic, which is orders of magnitude rarer than
// movement or combat messages.
//
// Based on "Approximately Detecting Duplicates for Streaming Data using
// Stable Bloom Filters" by Deng and Rafiei (2006).
package antireplay
