/*
Package token implements the fungible asset deposits are made in.

Balances and allowances follow the usual transfer/approve semantics. An
address approves a spender, and the spender may later pull up to the approved
amount with TransferFrom. The saving bank ledger is such a spender: a
depositor approves the ledger address before creating a deposit.

Amounts are integers in the smallest unit of the asset (six decimals by
default).
*/
package token
