/*
Package ledger implements the fixed-term deposit lifecycle.

A deposit is opened against an active plan: the principal moves into the
vault and a certificate with the deposit id is minted to the depositor.
Whoever holds the certificate may close the deposit. Closing before maturity
pays the principal minus the plan penalty, closing at or after maturity pays
principal plus interest. A matured deposit may instead be renewed: it is
closed and a new deposit is opened for the principal plus interest, without
moving funds.

The ledger acts through a module account, LedgerAddress. It is the only
caller of the vault, the only certificate minter and the token spender that
depositors approve before opening a deposit.

Deposits are never deleted. A closed deposit keeps its record, even though
its certificate is burned.
*/
package ledger
