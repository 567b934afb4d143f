// Package models defines the core domain models for QuickSplit.
//
// # Models
//
//   - Receipt: one shared bill: line items, participants, tax/tip policy,
//     and the four engine-owned totals
//   - LineItem: a priced, quantified entry on a receipt
//   - Claim: one participant's stake in a line item, either exclusive
//     portions or membership in an equal split
//   - Participant: a person splitting the receipt, identified by ID
//   - User: a registered account that owns receipts
//
// # Design principles
//
//  1. Monetary amounts are decimals (shopspring), never binary floats.
//  2. Claims carry only the participant ID; display names resolve through
//     the receipt's participant list, so renames never leave stale copies.
//  3. The meaning of a claim's portion count is fixed by its kind at
//     construction time: units taken for exclusive claims, group size for
//     shared claims. Constructors validate, so a zero group size can never
//     reach the allocation math.
//  4. Subtotal, TaxAmount, TipAmount and GrandTotal on a Receipt are caches
//     written only by the engine recompute; they are never hand-edited.
package models
