/*
Package vault implements the custody pool holding every deposited principal.

The vault serves exactly one caller, bound once. It keeps an aggregate
balance only and carries no business rules: solvency, ownership and payout
splitting are decided by the caller. The funds themselves are held by the
custody address in the token ledger.
*/
package vault
